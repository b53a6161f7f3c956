// Package validation validates user-details records: per-field rules plus the
// cross-field phone/country rule.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/profile-pdf/internal/phone"
	"github.com/jonathan/profile-pdf/internal/schemas"
	"github.com/jonathan/profile-pdf/internal/types"
	schemafiles "github.com/jonathan/profile-pdf/schemas"
)

// Fixed messages.
const (
	PhoneForCountryMessage = "Invalid phone number for selected country"
	GeneralFailureMessage  = "Validation failed"
	InvalidInputMessage    = "Invalid input"
)

// Validate checks every field of d, then re-checks the phone against the
// selected country. The input is not modified. A valid result carries the
// normalized record.
func Validate(d types.UserDetails) types.ValidationResult {
	return run(d, nil)
}

// ValidateJSON validates a raw JSON draft. Input that is not a JSON object
// yields a single general error.
func ValidateJSON(data []byte) types.ValidationResult {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return generalFailure()
	}
	m, ok := v.(map[string]any)
	if !ok {
		return generalFailure()
	}
	return ValidateMap(m)
}

// ValidateMap validates a decoded JSON object. Missing keys read as empty
// strings; values of the wrong type are reported on their field.
func ValidateMap(m map[string]any) (result types.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = generalFailure()
		}
	}()

	if m == nil {
		m = map[string]any{}
	}

	shapeErrs, err := shapeErrors(m)
	if err != nil {
		return generalFailure()
	}
	return run(types.FromMap(m), shapeErrs)
}

// ValidateField checks a single field for live feedback. For the phone field
// with a country code the full phone rule runs and its own message is
// returned; every other field is checked in isolation. Returns nil when valid.
func ValidateField(field types.Field, value, countryCode string) *types.FieldError {
	if field == types.FieldPhone && countryCode != "" {
		if err := phone.Validate(value, countryCode); err != nil {
			return phoneFieldError(err, "")
		}
		return nil
	}

	_, fe := checkField(field, value)
	return fe
}

func run(d types.UserDetails, preset map[types.Field]types.FieldError) types.ValidationResult {
	errs := make(map[types.Field]types.FieldError)
	normalized := d

	for _, f := range types.Fields() {
		if fe, ok := preset[f]; ok {
			errs[f] = fe
			continue
		}
		value, fe := checkField(f, d.Get(f))
		if fe != nil {
			errs[f] = *fe
			continue
		}
		normalized = normalized.With(f, value)
	}

	if err := phone.Validate(d.Phone, d.CountryCode); err != nil {
		errs[types.FieldPhone] = *phoneFieldError(err, PhoneForCountryMessage)
	}

	if len(errs) > 0 {
		return types.ValidationResult{Valid: false, Errors: errs}
	}
	return types.ValidationResult{Valid: true, Data: &normalized, Errors: errs}
}

// phoneFieldError converts a phone validation error. A non-empty message
// replaces the validator's own.
func phoneFieldError(err error, message string) *types.FieldError {
	fe := &types.FieldError{Field: types.FieldPhone, Code: types.CodeGeneralFailure, Message: err.Error()}
	var verr *phone.ValidationError
	if errors.As(err, &verr) {
		fe.Code = verr.Code
	}
	if message != "" {
		fe.Message = message
	}
	return fe
}

// shapeErrors checks m against the user-details schema and reports fields
// holding non-string values.
func shapeErrors(m map[string]any) (map[types.Field]types.FieldError, error) {
	err := schemas.ValidateDocument(schemafiles.UserDetails, m)
	if err == nil {
		return nil, nil
	}

	var verr *schemas.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	out := make(map[types.Field]types.FieldError)
	for _, e := range verr.Errors {
		field, ok := types.ParseField(e.Field)
		if !ok {
			return nil, fmt.Errorf("unexpected schema error at %s: %s", e.Field, e.Message)
		}
		if _, seen := out[field]; seen {
			continue
		}
		message := InvalidInputMessage
		if e.Given != "" {
			message = fmt.Sprintf("Expected string, received %s", e.Given)
		}
		out[field] = types.FieldError{Field: field, Code: types.CodeFieldFormatInvalid, Message: message}
	}
	return out, nil
}

func generalFailure() types.ValidationResult {
	return types.ValidationResult{
		Valid: false,
		Errors: map[types.Field]types.FieldError{
			types.FieldGeneral: {Field: types.FieldGeneral, Code: types.CodeGeneralFailure, Message: GeneralFailureMessage},
		},
	}
}
