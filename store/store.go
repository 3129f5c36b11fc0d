// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateRequest  = errors.New("song already requested")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrProtectedDJ       = errors.New("superadmin cannot be deleted")
)

// Store is the persistence layer for DJs, events, requests, the vote
// ledger and the archive. It works on PostgreSQL and SQLite.
type Store struct {
	db       *sql.DB
	codeSalt string
	now      func() time.Time
}

// New creates a Store. codeSalt is used to derive public event codes.
func New(db *sql.DB, codeSalt string) *Store {
	return &Store{
		db:       db,
		codeSalt: codeSalt,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: trimmed, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
