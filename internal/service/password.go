package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher encapsula el hashing de contraseñas con bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher crea un hasher; costos fuera de rango caen al default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash genera el digest de una contraseña en claro. El claro nunca se loguea.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compara una contraseña en claro contra un digest almacenado.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
