package user

import (
	"strings"
	"unicode"
)

const emailDomain = "@singular.co.za"

// ValidateCompanyEmail checks that the address belongs to the company domain
// and that the local part contains at least one letter.
func ValidateCompanyEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	lower := strings.ToLower(trimmed)
	if !strings.HasSuffix(lower, emailDomain) {
		return false
	}
	local := trimmed[:len(trimmed)-len(emailDomain)]
	for _, r := range local {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// ValidatePasswordComplexity requires at least 8 characters with one lowercase
// letter, one uppercase letter, one digit and one special character.
func ValidatePasswordComplexity(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
