// Package draft persists the single in-progress user-details draft and loads
// it back with re-validation.
package draft

import (
	"context"
	"errors"
)

// DefaultKey is the well-known key the draft is stored under.
const DefaultKey = "pdfFormData"

// ErrNotFound is returned by Store.Load when no draft has been saved.
var ErrNotFound = errors.New("draft not found")

// Store holds the raw JSON of one draft.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
