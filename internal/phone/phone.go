// Package phone validates and formats local phone numbers against the country registry.
package phone

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
	"github.com/nyaruka/phonenumbers"
)

// Validate checks phone against the rules of countryCode. Rules run in order
// (country, minimum length, maximum length, pattern) and only the first
// failure is reported. Returns nil or a *ValidationError.
func Validate(phone, countryCode string) error {
	country, ok := countries.Lookup(countryCode)
	if !ok {
		return &ValidationError{
			Code:        types.CodeUnknownCountry,
			CountryCode: countryCode,
			Message:     "Invalid country selected",
		}
	}

	digits := countries.DigitsOnly(phone)

	if len(digits) < country.MinLength {
		return &ValidationError{
			Code:        types.CodePhoneTooShort,
			CountryCode: countryCode,
			Message:     fmt.Sprintf("Phone number must be at least %d digits for %s", country.MinLength, country.Name),
		}
	}

	if len(digits) > country.MaxLength {
		return &ValidationError{
			Code:        types.CodePhoneTooLong,
			CountryCode: countryCode,
			Message:     fmt.Sprintf("Phone number must be at most %d digits for %s", country.MaxLength, country.Name),
		}
	}

	if !country.Matches(digits) {
		return &ValidationError{
			Code:        types.CodePhonePatternMismatch,
			CountryCode: countryCode,
			Message:     fmt.Sprintf("Invalid phone number format for %s. Example: %s", country.Name, country.Example),
		}
	}

	return nil
}

// Format rewrites phone into the display style of countryCode. It is cosmetic
// only: the result may still fail Validate. Unknown countries get the input back.
func Format(phone, countryCode string) string {
	if _, ok := countries.Lookup(countryCode); !ok {
		return phone
	}

	digits := countries.DigitsOnly(phone)

	switch countryCode {
	case "US", "CA":
		switch {
		case len(digits) >= 6:
			return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
		case len(digits) >= 3:
			return fmt.Sprintf("(%s) %s", digits[:3], digits[3:])
		default:
			return digits
		}
	case countries.DefaultCode:
		return digits
	default:
		return groupDigits(digits)
	}
}

// groupDigits inserts a space after each run of three or four digits that is
// followed by another digit, scanning left to right and preferring four.
func groupDigits(digits string) string {
	var sb strings.Builder
	sb.Grow(len(digits) + len(digits)/3)

	i := 0
	for len(digits)-i >= 4 {
		n := 4
		if len(digits)-i == 4 {
			n = 3
		}
		sb.WriteString(digits[i : i+n])
		sb.WriteByte(' ')
		i += n
	}
	sb.WriteString(digits[i:])
	return sb.String()
}

// E164 returns phone in +<country code><number> form when the number parses
// for countryCode's region.
func E164(phone, countryCode string) (string, bool) {
	if _, ok := countries.Lookup(countryCode); !ok {
		return "", false
	}
	digits := countries.DigitsOnly(phone)
	if digits == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(digits, countryCode)
	if err != nil {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
