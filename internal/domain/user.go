package domain

import "time"

// User es la cuenta persistida. Los tokens vacíos significan "sin pendiente".
type User struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Role                 string     `json:"role"`
	IsVerified           bool       `json:"is_verified"`
	VerificationToken    string     `json:"-"`
	VerificationExpires  *time.Time `json:"-"`
	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Profile es la vista redactada que se devuelve al cliente.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// Profile construye la vista pública de la cuenta. Nunca incluye el hash.
func (u User) Profile() Profile {
	return Profile{
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}

const DefaultRole = "user"
