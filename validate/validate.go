package validate

import (
	"regexp"
	"strings"
)

const (
	// maxEmailLength caps addresses at the RFC 5321 path limit.
	maxEmailLength = 254

	minPasswordLength = 8
	maxPasswordLength = 128

	// maxInputLength bounds scrubbed free-form input before it reaches
	// downstream storage.
	maxInputLength = 1000

	specialChars = "!@#$%^&*()_+-=[]{}|;:'\",.<>?/\\`~"
)

// emailPattern requires a conventional local part, exactly one @, and a
// domain of dot-separated labels of 1-63 alphanumerics or hyphens that do not
// start or end with a hyphen. Structural approximation only.
var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9._%+-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$`,
)

// Email reports whether s is structurally acceptable as an email address.
// It rejects empty input and input longer than 254 characters.
func Email(s string) bool {
	if s == "" || len(s) > maxEmailLength {
		return false
	}
	return emailPattern.MatchString(s)
}

// Password reports whether s satisfies the credential policy: 8 to 128
// characters with at least one lowercase letter, one uppercase letter, one
// digit, and one special character. All four classes are required; there is
// no scoring or partial credit.
func Password(s string) bool {
	if len(s) < minPasswordLength || len(s) > maxPasswordLength {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// CleanInput trims surrounding whitespace, strips literal angle brackets, and
// truncates the result to 1000 characters. It never fails; empty input maps
// to an empty result.
func CleanInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if runes := []rune(s); len(runes) > maxInputLength {
		s = string(runes[:maxInputLength])
	}
	return s
}
