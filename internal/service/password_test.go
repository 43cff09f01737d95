package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("Secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "" || strings.Contains(digest, "Secret123") {
		t.Fatalf("expected opaque digest, got %q", digest)
	}
	if !h.Verify("Secret123", digest) {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify("Secret124", digest) {
		t.Fatalf("expected non-matching password to fail")
	}
}

func TestPasswordHasherCostOutOfRange(t *testing.T) {
	h := NewPasswordHasher(99)

	digest, err := h.Hash("Secret123")
	if err != nil {
		t.Fatalf("expected fallback to default cost, got %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("cost extraction failed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
