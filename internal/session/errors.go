package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/profile-pdf/internal/types"
)

// ErrGenerationInProgress is returned when a PDF is already being generated
// for the session.
var ErrGenerationInProgress = errors.New("PDF generation already in progress")

// InvalidDraftError is returned when an operation needs a valid draft.
type InvalidDraftError struct {
	Errors map[types.Field]types.FieldError
}

func (e *InvalidDraftError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return fmt.Sprintf("draft is invalid: %s", strings.Join(fields, ", "))
}

// StateError wraps a rejected state transition.
type StateError struct {
	Event string
	State string
	Cause error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s: %v", e.Event, e.State, e.Cause)
}

func (e *StateError) Unwrap() error {
	return e.Cause
}
