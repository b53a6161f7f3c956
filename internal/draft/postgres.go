package draft

import (
	"context"

	"github.com/jonathan/profile-pdf/internal/db"
)

// draftDB is the subset of *db.DB used by DBStore.
type draftDB interface {
	GetDraft(ctx context.Context, key string) (*db.Draft, error)
	UpsertDraft(ctx context.Context, key string, content []byte) error
	DeleteDraft(ctx context.Context, key string) error
}

// DBStore keeps the draft in the profile_drafts table.
type DBStore struct {
	db  draftDB
	Key string
}

// NewDBStore returns a store backed by database. An empty key means DefaultKey.
func NewDBStore(database draftDB, key string) *DBStore {
	if key == "" {
		key = DefaultKey
	}
	return &DBStore{db: database, Key: key}
}

func (s *DBStore) Load(ctx context.Context) ([]byte, error) {
	d, err := s.db.GetDraft(ctx, s.Key)
	if err != nil {
		return nil, &StoreError{Backend: "postgres", Op: "load", Cause: err}
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return []byte(d.Content), nil
}

func (s *DBStore) Save(ctx context.Context, data []byte) error {
	if err := s.db.UpsertDraft(ctx, s.Key, data); err != nil {
		return &StoreError{Backend: "postgres", Op: "save", Cause: err}
	}
	return nil
}

func (s *DBStore) Clear(ctx context.Context) error {
	if err := s.db.DeleteDraft(ctx, s.Key); err != nil {
		return &StoreError{Backend: "postgres", Op: "clear", Cause: err}
	}
	return nil
}
