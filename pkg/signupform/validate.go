package signupform

import (
	"errors"
	"regexp"
	"strings"
)

// Field names a form input
type Field string

const (
	FieldFullName Field = "fullName"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
)

// DefaultCountryCode replaces a leading 0 in local phone numbers
const DefaultCountryCode = "+27"

// Inline messages shown under the inputs
const (
	MessageFullName       = "Please enter your full name (first and last)."
	MessageEmail          = "Please enter a valid email address."
	MessagePhone          = "Please enter a valid phone number starting with 0 or an international code (e.g. +44)."
	MessagePhoneCountry   = "Please enter a valid phone number with country code (e.g., +27...)"
	MessagePhoneDuplicate = "This phone number is already registered. Please use a different number."
)

var (
	fullNameRegex = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex    = regexp.MustCompile(`^(0[0-9]{6,14}|\+[1-9][0-9]{6,14})$`)
	e164Regex     = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// ErrInvalidPhone is returned when a number cannot be normalized
var ErrInvalidPhone = errors.New("invalid-phone")

// Fields are the raw values typed into the form
type Fields struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ErrorMap holds a message per failing field. A missing key means valid.
type ErrorMap map[Field]string

// Validate checks every field independently and reports each failure
func Validate(f Fields) ErrorMap {
	errs := ErrorMap{}
	if !fullNameRegex.MatchString(f.FullName) {
		errs[FieldFullName] = MessageFullName
	}
	if !emailRegex.MatchString(f.Email) {
		errs[FieldEmail] = MessageEmail
	}
	if !phoneRegex.MatchString(f.Phone) {
		errs[FieldPhone] = MessagePhone
	}
	return errs
}

// NormalizePhone strips whitespace, swaps a leading 0 for the default
// country code and checks the result is in +<country><number> form.
func NormalizePhone(raw string) (string, error) {
	phone := whitespace.ReplaceAllString(strings.TrimSpace(raw), "")
	if strings.HasPrefix(phone, "0") {
		phone = DefaultCountryCode + phone[1:]
	}
	if !e164Regex.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
