package types

import (
	"encoding/json"
	"fmt"
)

// ErrorCode classifies a validation failure.
type ErrorCode string

// Validation error taxonomy.
const (
	CodeFieldTooShort        ErrorCode = "field_too_short"
	CodeFieldTooLong         ErrorCode = "field_too_long"
	CodeFieldFormatInvalid   ErrorCode = "field_format_invalid"
	CodeUnknownCountry       ErrorCode = "unknown_country"
	CodePhoneTooShort        ErrorCode = "phone_too_short"
	CodePhoneTooLong         ErrorCode = "phone_too_long"
	CodePhonePatternMismatch ErrorCode = "phone_pattern_mismatch"
	CodeGeneralFailure       ErrorCode = "general_validation_failure"
)

// FieldError is a single field's validation failure.
type FieldError struct {
	Field   Field     `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult is either a normalized record (Valid) or a set of field
// errors, at most one per field.
type ValidationResult struct {
	Valid  bool
	Data   *UserDetails
	Errors map[Field]FieldError
}

// Messages returns the errors as a field → message map.
func (r ValidationResult) Messages() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for f, e := range r.Errors {
		out[string(f)] = e.Message
	}
	return out
}

// Codes returns the errors as a field → code map.
func (r ValidationResult) Codes() map[string]ErrorCode {
	out := make(map[string]ErrorCode, len(r.Errors))
	for f, e := range r.Errors {
		out[string(f)] = e.Code
	}
	return out
}

// validationResultJSON is the wire form: errors stay a flat field → message map.
type validationResultJSON struct {
	Valid  bool                 `json:"valid"`
	Data   *UserDetails         `json:"data,omitempty"`
	Errors map[string]string    `json:"errors"`
	Codes  map[string]ErrorCode `json:"codes,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(validationResultJSON{
		Valid:  r.Valid,
		Data:   r.Data,
		Errors: r.Messages(),
		Codes:  r.Codes(),
	})
}
