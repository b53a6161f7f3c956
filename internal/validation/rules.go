package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
)

// rule is a single predicate on a normalized field value. The message is
// reported when the predicate fails.
type rule struct {
	code    types.ErrorCode
	message string
	ok      func(string) bool
}

// fieldSpec normalizes a field and then checks its rules in order; the first
// failing rule wins.
type fieldSpec struct {
	normalize func(string) string
	rules     []rule
}

var (
	nameChars = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	validate  = validator.New()
)

var specs = map[types.Field]fieldSpec{
	types.FieldName: {
		normalize: strings.TrimSpace,
		rules: []rule{
			minLen(2, "Name must be at least 2 characters long"),
			maxLen(50, "Name must be less than 50 characters"),
			{code: types.CodeFieldFormatInvalid, message: "Name can only contain letters and spaces", ok: nameChars.MatchString},
		},
	},
	types.FieldEmail: {
		normalize: func(s string) string { return strings.ToLower(strings.TrimSpace(s)) },
		rules: []rule{
			{code: types.CodeFieldFormatInvalid, message: "Please enter a valid email address", ok: isEmail},
			maxLen(100, "Email must be less than 100 characters"),
		},
	},
	types.FieldCountryCode: {
		rules: []rule{
			minLen(2, "Please select a country"),
			maxLen(2, "Invalid country code"),
			{code: types.CodeUnknownCountry, message: "Please select a supported country", ok: isKnownCountry},
		},
	},
	types.FieldPhone: {
		normalize: strings.TrimSpace,
		rules: []rule{
			minLen(1, "Phone number is required"),
		},
	},
	types.FieldPosition: {
		normalize: strings.TrimSpace,
		rules: []rule{
			minLen(2, "Position must be at least 2 characters long"),
			maxLen(100, "Position must be less than 100 characters"),
		},
	},
	types.FieldDescription: {
		rules: []rule{
			maxLen(1000, "Description must be less than 1000 characters"),
		},
	},
}

func minLen(n int, message string) rule {
	return rule{
		code:    types.CodeFieldTooShort,
		message: message,
		ok:      func(s string) bool { return utf8.RuneCountInString(s) >= n },
	}
}

func maxLen(n int, message string) rule {
	return rule{
		code:    types.CodeFieldTooLong,
		message: message,
		ok:      func(s string) bool { return utf8.RuneCountInString(s) <= n },
	}
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isKnownCountry(s string) bool {
	_, ok := countries.Lookup(s)
	return ok
}

// checkField normalizes value and runs field's rules. It returns the
// normalized value, or the first violation.
func checkField(field types.Field, value string) (string, *types.FieldError) {
	spec, ok := specs[field]
	if !ok {
		return value, &types.FieldError{Field: field, Code: types.CodeGeneralFailure, Message: InvalidInputMessage}
	}

	if spec.normalize != nil {
		value = spec.normalize(value)
	}

	for _, r := range spec.rules {
		if !r.ok(value) {
			return value, &types.FieldError{Field: field, Code: r.code, Message: r.message}
		}
	}
	return value, nil
}
