// Package db provides PostgreSQL access for persisted profile drafts.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the drafts table when it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetDraft returns the draft stored under key, or nil when there is none.
func (db *DB) GetDraft(ctx context.Context, key string) (*Draft, error) {
	var d Draft
	err := db.pool.QueryRow(ctx,
		`SELECT key, content, updated_at FROM profile_drafts WHERE key = $1`,
		key,
	).Scan(&d.Key, &d.Content, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft %s: %w", key, err)
	}
	return &d, nil
}

// UpsertDraft stores content under key, replacing any previous value.
// Content is stored as text so that a corrupt draft survives the round trip
// and can be detected on load.
func (db *DB) UpsertDraft(ctx context.Context, key string, content []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profile_drafts (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, string(content),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", key, err)
	}
	return nil
}

// DeleteDraft removes the draft stored under key. Deleting a missing draft
// is not an error.
func (db *DB) DeleteDraft(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM profile_drafts WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", key, err)
	}
	return nil
}
