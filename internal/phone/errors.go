package phone

import "github.com/jonathan/profile-pdf/internal/types"

// ValidationError reports why a phone number is not valid for a country.
type ValidationError struct {
	Code        types.ErrorCode
	CountryCode string
	Message     string
}

func (e *ValidationError) Error() string {
	return e.Message
}
