package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// 8〜16 chars, at least one letter and one digit, alphanumeric only.
var passwordRe = regexp.MustCompile(`^[A-Za-z\d]{8,16}$`)

func ValidPassword(pw string) bool {
	if !passwordRe.MatchString(pw) {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}
