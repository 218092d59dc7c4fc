package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidFullname(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Jane Doe", true},
		{"jane", true},
		{"", false},
		{"Jane2", false},
		{"Jane-Doe", false},
		{"J@ne", false},
		{"Zoë", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidFullname(tt.in), "fullname %q", tt.in)
	}
}

func TestIsValidFullname_RejectsDigitsAndSymbols(t *testing.T) {
	for _, c := range "0123456789!@#$%^&*()_+{}[]:;<>,.?~\\/-" {
		s := "Jane" + string(c) + "Doe"
		assert.False(t, IsValidFullname(s), "fullname %q", s)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@example.com"))
	assert.True(t, IsValidEmail("jane.doe@mail.example.org"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("jane@example"))
	assert.False(t, IsValidEmail("jane example@x.com"))
	assert.False(t, IsValidEmail("jane@@example.com"))
	assert.False(t, IsValidEmail("jane@exa@mple.com"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidEmail_RejectsUnicodeWhitespace(t *testing.T) {
	for _, s := range []string{
		"jane\v@example.com",
		"jane\u00a0doe@example.com",
		"jane@exa\u2028mple.com",
		"jane\u3000@example.com",
		"\ufeffjane@example.com",
	} {
		assert.False(t, IsValidEmail(s), "email %q", s)
	}
	assert.True(t, IsValidEmail("zoë@example.com"))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("123-456-7890"))
	assert.True(t, IsValidPhoneNumber("(123) 456 7890"))
	assert.True(t, IsValidPhoneNumber("1234567890"))

	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("12345678901"))
	assert.False(t, IsValidPhoneNumber(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Abcdefg1!"))
	assert.True(t, IsValidPassword(`Abcdef1\`))

	assert.False(t, IsValidPassword("abcdefgh"))
	assert.False(t, IsValidPassword("ABCDEFG1!"))
	assert.False(t, IsValidPassword("abcdefg1!"))
	assert.False(t, IsValidPassword("Abcdefgh!"))
	assert.False(t, IsValidPassword("Abcdefg12"))
}

func TestIsValidPassword_ShortAlwaysFails(t *testing.T) {
	full := "Aa1!Bb2@"
	for n := 0; n < MinPasswordLength; n++ {
		assert.False(t, IsValidPassword(full[:n]), "length %d", n)
	}
	assert.True(t, IsValidPassword(full))
	assert.False(t, IsValidPassword(strings.Repeat("a", 7)))

	// length is counted in characters, not bytes
	assert.False(t, IsValidPassword("Ab1!ééé"))
	assert.True(t, IsValidPassword("Ab1!éééé"))
}

func TestIsValidPasswordAndConfirmation(t *testing.T) {
	assert.True(t, IsValidPasswordAndConfirmation("Abcdefg1!", "Abcdefg1!"))
	assert.False(t, IsValidPasswordAndConfirmation("Abcdefg1!", "Abcdefg1?"))
	assert.False(t, IsValidPasswordAndConfirmation("abcdefgh", "abcdefgh"))
}

func TestSplitSubjects(t *testing.T) {
	assert.Equal(t, []string{"Math", "Physics"}, SplitSubjects("Math, Physics"))
	assert.Equal(t, []string{"Math", "", "Art"}, SplitSubjects(" Math ,, Art "))
	assert.Equal(t, []string{"Art", "Art"}, SplitSubjects("Art,Art"))
	assert.Equal(t, []string{""}, SplitSubjects(""))
}
