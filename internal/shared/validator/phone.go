package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Korean numbers: 010-1234-5678, 02-123-4567, 031-1234-5678 (hyphens optional)
	domesticPhoneRegex = regexp.MustCompile(`^0\d{1,2}-?\d{3,4}-?\d{4}$`)
	// E.164: +82 10 1234 5678, +1-202-555-0143 (spaces and hyphens ignored)
	internationalPhoneRegex = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

	// ISO 4217 alphabetic code, case-insensitive (stored upper case)
	currencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// ValidatePhone accepts a Korean domestic number or an E.164 international one.
// Used for both user and company contact numbers.
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	if domesticPhoneRegex.MatchString(phone) {
		return true
	}
	compact := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return internationalPhoneRegex.MatchString(compact)
}

// ValidateCurrency validates a three letter currency code
func ValidateCurrency(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}
