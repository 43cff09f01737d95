package validate

import "strings"

// Password exige más de 6 caracteres con al menos una mayúscula y una
// minúscula ASCII.
func Password(password string) bool {
	if len(password) <= 6 {
		return false
	}
	var hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	return hasLower && hasUpper
}

// Email solo exige la presencia de '@'; no pretende ser RFC 5322.
func Email(email string) bool {
	return strings.Contains(email, "@")
}
