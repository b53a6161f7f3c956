package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/profile-pdf/internal/session"
	"github.com/jonathan/profile-pdf/internal/types"
)

// ErrBadRequest indicates a malformed request body or parameter
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad request: %s", e.Message)
	}
	return fmt.Sprintf("bad request: %s - %s", e.Field, e.Message)
}

// ErrInvalidRecord indicates a submitted record failed validation
type ErrInvalidRecord struct {
	Result types.ValidationResult
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("record is invalid: %d field error(s)", len(e.Result.Errors))
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest   *ErrBadRequest
		fieldErr     *types.FieldError
		invalidDraft *session.InvalidDraftError
		invalidRec   *ErrInvalidRecord
		stateErr     *session.StateError
	)

	switch {
	case errors.As(err, &badRequest), errors.As(err, &fieldErr):
		return http.StatusBadRequest
	case errors.As(err, &invalidDraft), errors.As(err, &invalidRec):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrGenerationInProgress), errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
