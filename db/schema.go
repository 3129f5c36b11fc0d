// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is valid for both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	// One statement per Exec so both drivers behave the same.
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

const schema = `
-- DJs
CREATE TABLE IF NOT EXISTS dj (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_superadmin BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    dj_id TEXT NOT NULL REFERENCES dj(id),
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    active BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_event_dj_id ON event(dj_id);

-- Song requests
CREATE TABLE IF NOT EXISTS request (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id),
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    external_ref TEXT,
    score INTEGER NOT NULL DEFAULT 1 CHECK (score >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_request_event_id ON request(event_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_request_event_song ON request(event_id, LOWER(title), LOWER(artist));

-- Vote ledger: at most one row per (request, voter)
CREATE TABLE IF NOT EXISTS vote (
    request_id TEXT NOT NULL REFERENCES request(id),
    voter_key TEXT NOT NULL,
    directive TEXT NOT NULL CHECK (directive IN ('up', 'down')),
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (request_id, voter_key)
);

-- Archive of played requests. No foreign keys: entries outlive their event and DJ.
CREATE TABLE IF NOT EXISTS archive (
    id TEXT PRIMARY KEY,
    dj_id TEXT NOT NULL,
    event_name TEXT NOT NULL,
    event_code TEXT NOT NULL,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    external_ref TEXT,
    final_score INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    archived_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_archive_dj_id ON archive(dj_id)
`
