package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
	"github.com/jonathan/profile-pdf/internal/validation"
)

// LoadResult is the outcome of LoadOrDefault.
type LoadResult struct {
	Draft types.UserDetails
	// Errors holds the validation errors of a stored draft that did not
	// validate. The draft is still returned as stored.
	Errors map[types.Field]types.FieldError
	// Loaded reports whether Draft came from the store.
	Loaded bool
	// Discarded reports that a stored draft could not be parsed and was cleared.
	Discarded bool
}

// Default returns the empty draft with the home country selected.
func Default() types.UserDetails {
	return types.UserDetails{CountryCode: countries.DefaultCode}
}

// SaveDraft serializes d and overwrites the stored draft.
func SaveDraft(ctx context.Context, store Store, d types.UserDetails) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return store.Save(ctx, data)
}

// LoadOrDefault loads the stored draft and re-validates it. A missing draft
// yields Default. A draft that is not a JSON object is cleared from the store
// and Default is returned. A draft that parses but fails validation is returned
// unchanged together with its errors; a valid one is returned normalized.
func LoadOrDefault(ctx context.Context, store Store) (LoadResult, error) {
	data, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoadResult{Draft: Default()}, nil
		}
		return LoadResult{}, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		if clearErr := store.Clear(ctx); clearErr != nil {
			return LoadResult{}, clearErr
		}
		return LoadResult{Draft: Default(), Discarded: true}, nil
	}

	result := validation.ValidateMap(m)
	if result.Valid {
		return LoadResult{Draft: *result.Data, Loaded: true}, nil
	}
	return LoadResult{Draft: types.FromMap(m), Errors: result.Errors, Loaded: true}, nil
}
