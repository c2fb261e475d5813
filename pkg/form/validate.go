package form

import (
	"regexp"
	"unicode/utf8"

	"github.com/aretw0/waitlist/pkg/domain"
)

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// IsValidEmail reports whether s, as a whole, looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidName reports whether name has at least domain.MinNameLength characters.
func IsValidName(name string) bool {
	return utf8.RuneCountInString(name) >= domain.MinNameLength
}

// Valid reports whether the three fields allow a submit.
// Equality of email and confirmation is checked at submit time, not here.
func Valid(name, email, confirm string) bool {
	return IsValidName(name) && IsValidEmail(email) && confirm != ""
}
