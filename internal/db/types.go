package db

import "time"

// Draft is a row of the profile_drafts table.
type Draft struct {
	Key       string    `json:"key"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS profile_drafts (
	key        TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
