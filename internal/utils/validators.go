package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	fullnameRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRegex = regexp.MustCompile(`\D`)

	upperRegex  = regexp.MustCompile(`[A-Z]`)
	lowerRegex  = regexp.MustCompile(`[a-z]`)
	digitRegex  = regexp.MustCompile(`\d`)
	symbolRegex = regexp.MustCompile(`[!@#$%^&*()_+{}\[\]:;<>,.?~\\/-]`)
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// IsValidFullname reports whether s is non-empty and made of ASCII letters and spaces.
func IsValidFullname(s string) bool {
	return fullnameRegex.MatchString(s)
}

// IsValidEmail checks the local@domain.tld shape with a single '@' and no
// whitespace. Go's \s is ASCII only, so Unicode spaces and the BOM are
// rejected separately.
func IsValidEmail(s string) bool {
	if strings.IndexFunc(s, isEmailSpace) >= 0 {
		return false
	}
	return emailRegex.MatchString(s)
}

func isEmailSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF'
}

// IsValidPhoneNumber strips every non-digit and expects exactly ten digits.
func IsValidPhoneNumber(s string) bool {
	return len(nonDigitRegex.ReplaceAllString(s, "")) == 10
}

// IsValidPassword requires MinPasswordLength characters with at least one
// uppercase letter, lowercase letter, digit and symbol.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	return upperRegex.MatchString(s) &&
		lowerRegex.MatchString(s) &&
		digitRegex.MatchString(s) &&
		symbolRegex.MatchString(s)
}

func IsValidPasswordAndConfirmation(password, password1 string) bool {
	return IsValidPassword(password) && password == password1
}

// SplitSubjects turns "Math, Physics" into ["Math", "Physics"]. Order and
// empty elements are kept as the user typed them.
func SplitSubjects(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
