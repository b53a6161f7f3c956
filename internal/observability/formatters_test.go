package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
)

func TestPrintCountries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCountries(countries.All())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 20)
	assert.Contains(t, lines[0], "IN")
	assert.Contains(t, lines[0], "+91")
	assert.Contains(t, lines[0], "10 digits")
	assert.Contains(t, buf.String(), "10-11 digits")
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	d := types.UserDetails{
		Name:        "Jane Smith",
		Email:       "jane@example.com",
		CountryCode: "GB",
		Phone:       "7911 1234 56",
		Position:    "Engineer",
		Description: strings.Repeat("word ", 100),
	}
	errs := map[types.Field]types.FieldError{
		types.FieldEmail: {Field: types.FieldEmail, Code: types.CodeFieldFormatInvalid, Message: "Please enter a valid email address"},
	}

	p.PrintDraft(d, errs)
	output := buf.String()

	assert.Contains(t, output, "PROFILE DRAFT")
	assert.Contains(t, output, "Jane Smith")
	assert.Contains(t, output, "United Kingdom (+44)")
	assert.Contains(t, output, "✗ Please enter a valid email address")
	assert.Contains(t, output, "more lines")
}

func TestPrintDraft_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDraft(types.UserDetails{CountryCode: "IN"}, nil)

	assert.Contains(t, buf.String(), "Name:        -")
	assert.NotContains(t, buf.String(), "Description")
}

func TestPrintValidation(t *testing.T) {
	tests := []struct {
		name     string
		result   types.ValidationResult
		contains []string
	}{
		{
			name: "valid",
			result: types.ValidationResult{
				Valid: true,
				Data:  &types.UserDetails{Name: "Jane Smith", CountryCode: "IN"},
			},
			contains: []string{"VALIDATION", "All fields are valid", "Jane Smith"},
		},
		{
			name: "invalid",
			result: types.ValidationResult{
				Errors: map[types.Field]types.FieldError{
					types.FieldPhone: {Field: types.FieldPhone, Code: types.CodePhoneTooShort, Message: "Phone number must be at least 10 digits for India"},
					types.FieldName:  {Field: types.FieldName, Code: types.CodeFieldTooShort, Message: "Name must be at least 2 characters long"},
				},
			},
			contains: []string{"VALIDATION FAILED", "Found 2 error(s)", "[phone_too_short]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintValidation(tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintValidation_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidation(types.ValidationResult{
		Errors: map[types.Field]types.FieldError{
			types.FieldPhone: {Message: "phone"},
			types.FieldName:  {Message: "name"},
		},
	})
	output := buf.String()
	assert.Less(t, strings.Index(output, "✗ name"), strings.Index(output, "✗ phone"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aaa bbb", "ccc"}, wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"one", "", "two"}, wrap("one\n\ntwo", 10))
}
