// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/request-queue/models"
)

const djColumns = `id, username, password_hash, is_superadmin, created_at`

func scanDJ(row rowScanner) (models.DJ, error) {
	var dj models.DJ
	err := row.Scan(&dj.ID, &dj.Username, &dj.PasswordHash, &dj.IsSuperadmin, &dj.CreatedAt)
	return dj, err
}

// CreateDJ inserts a DJ account. passwordHash must already be hashed.
func (s *Store) CreateDJ(ctx context.Context, username, passwordHash string, superadmin bool) (models.DJ, error) {
	username = strings.TrimSpace(username)
	if username == "" || passwordHash == "" {
		return models.DJ{}, fmt.Errorf("%w: username and password are required", ErrInvalidArgument)
	}

	if _, err := s.GetDJByUsername(ctx, username); err == nil {
		return models.DJ{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return models.DJ{}, err
	}

	dj := models.DJ{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		IsSuperadmin: superadmin,
		CreatedAt:    s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dj (id, username, password_hash, is_superadmin, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, dj.ID, dj.Username, dj.PasswordHash, dj.IsSuperadmin, dj.CreatedAt)
	if err != nil {
		// Lost a race against a concurrent registration
		if _, lookupErr := s.GetDJByUsername(ctx, username); lookupErr == nil {
			return models.DJ{}, ErrDuplicateUsername
		}
		return models.DJ{}, fmt.Errorf("insert dj: %w", err)
	}

	slog.Info("dj created", "dj_id", dj.ID, "username", dj.Username, "superadmin", superadmin)
	return dj, nil
}

// EnsureSuperadmin creates the superadmin account if it does not exist,
// or promotes an existing account with that username.
func (s *Store) EnsureSuperadmin(ctx context.Context, username, passwordHash string) (models.DJ, error) {
	dj, err := s.GetDJByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return s.CreateDJ(ctx, username, passwordHash, true)
	}
	if err != nil {
		return models.DJ{}, err
	}

	if !dj.IsSuperadmin {
		if _, err := s.db.ExecContext(ctx, `
			UPDATE dj SET is_superadmin = $1 WHERE id = $2
		`, true, dj.ID); err != nil {
			return models.DJ{}, fmt.Errorf("promote dj: %w", err)
		}
		dj.IsSuperadmin = true
		slog.Info("dj promoted to superadmin", "dj_id", dj.ID)
	}
	return dj, nil
}

// GetDJByUsername looks up a DJ for login.
func (s *Store) GetDJByUsername(ctx context.Context, username string) (models.DJ, error) {
	dj, err := scanDJ(s.db.QueryRowContext(ctx, `
		SELECT `+djColumns+` FROM dj WHERE username = $1
	`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DJ{}, fmt.Errorf("dj %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return models.DJ{}, fmt.Errorf("query dj: %w", err)
	}
	return dj, nil
}

// GetDJ looks up a DJ by ID.
func (s *Store) GetDJ(ctx context.Context, id string) (models.DJ, error) {
	dj, err := scanDJ(s.db.QueryRowContext(ctx, `
		SELECT `+djColumns+` FROM dj WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DJ{}, fmt.Errorf("dj %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.DJ{}, fmt.Errorf("query dj: %w", err)
	}
	return dj, nil
}

// SetPassword replaces a DJ's password hash.
func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE dj SET password_hash = $1 WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := requireAffected(res, "dj "+id); err != nil {
		return err
	}

	slog.Info("dj password reset", "dj_id", id)
	return nil
}

// ListDJs returns all DJ accounts, newest first.
func (s *Store) ListDJs(ctx context.Context) ([]models.DJ, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+djColumns+` FROM dj ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query djs: %w", err)
	}
	defer rows.Close()

	djs := []models.DJ{}
	for rows.Next() {
		dj, err := scanDJ(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dj: %w", err)
		}
		djs = append(djs, dj)
	}
	return djs, rows.Err()
}

// DeleteDJ removes a DJ and all their events. Every live request is
// archived under the DJ's ID first; the archive rows remain after the DJ
// row is gone.
func (s *Store) DeleteDJ(ctx context.Context, id string) (int, error) {
	archived := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		dj, err := scanDJ(tx.QueryRowContext(ctx, `
			SELECT `+djColumns+` FROM dj WHERE id = $1
		`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("dj %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("query dj: %w", err)
		}
		if dj.IsSuperadmin {
			return ErrProtectedDJ
		}

		events, err := eventsWithRequests(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, er := range events {
			for _, req := range er.requests {
				if _, err := s.archiveTx(ctx, tx, id, er.event, req); err != nil {
					return err
				}
				archived++
			}
			if err := deleteEventTx(ctx, tx, er.event.ID); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM dj WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete dj: %w", err)
		}
		return requireAffected(res, "dj "+id)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("dj deleted", "dj_id", id, "archived", archived)
	return archived, nil
}

type eventRequests struct {
	event    models.Event
	requests []models.Request
}

// eventsWithRequests loads every event of a DJ with its requests.
// Rows are fully read before returning so the transaction connection is
// free for the following writes.
func eventsWithRequests(ctx context.Context, tx *sql.Tx, djID string) ([]eventRequests, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM event WHERE dj_id = $1 ORDER BY created_at
	`, djID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	var result []eventRequests
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan event: %w", err)
		}
		result = append(result, eventRequests{event: event})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range result {
		reqRows, err := tx.QueryContext(ctx, `
			SELECT `+requestColumns+` FROM request WHERE event_id = $1 ORDER BY created_at
		`, result[i].event.ID)
		if err != nil {
			return nil, fmt.Errorf("query requests: %w", err)
		}
		for reqRows.Next() {
			req, err := scanRequest(reqRows)
			if err != nil {
				reqRows.Close()
				return nil, fmt.Errorf("scan request: %w", err)
			}
			result[i].requests = append(result[i].requests, req)
		}
		err = reqRows.Err()
		reqRows.Close()
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
