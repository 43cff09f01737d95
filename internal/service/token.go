package service

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken devuelve un token opaco de byteLength bytes aleatorios,
// codificado en hex (2*byteLength caracteres).
func GenerateToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = 32
	}
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
