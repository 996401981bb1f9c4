package validator

import (
	"strings"
	"unicode/utf8"

	"quip/internal/domain"
)

// Rejection reasons, shown to users verbatim.
const (
	ReasonInvalidCredentials = "Invalid username or password"
	ReasonUsernameTooShort   = "Username must be at least 3 characters long"
	ReasonInvalidEmail       = "Please enter a valid email address"
	ReasonPasswordTooShort   = "Password must be at least 6 characters long"
	ReasonUsernameTaken      = "Username already exists"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// CheckSignup runs the input checks every signup policy shares, in order:
// username length, email format, password length. Lengths count code points.
// It returns the first failing reason, or ok.
func CheckSignup(username domain.Username, email, password string) (reason string, ok bool) {
	switch {
	case utf8.RuneCountInString(username.String()) < minUsernameLength:
		return ReasonUsernameTooShort, false
	case !strings.Contains(email, "@"):
		return ReasonInvalidEmail, false
	case utf8.RuneCountInString(password) < minPasswordLength:
		return ReasonPasswordTooShort, false
	}
	return "", true
}
