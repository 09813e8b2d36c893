package services

import (
	"regexp"
	"strings"
)

// emailPattern is deliberately loose (RFC-5322-lite): something before
// the @, something after, and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordSpecials are the characters accepted as "special" in the
// password composition rule, matching the signup form.
const passwordSpecials = "@$!%*?&"

// FieldViolation is a single field-level validation failure.
type FieldViolation struct {
	Field   string
	Message string
}

// joinViolations flattens violations into one human-readable message.
func joinViolations(violations []FieldViolation) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

// validEmail reports whether s looks like an email address.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validPasswordComposition checks the registration password rule:
// at least one lowercase, one uppercase, one digit and one special.
func validPasswordComposition(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}
