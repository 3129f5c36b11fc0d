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
	"github.com/danielhkuo/request-queue/voting"
)

const requestColumns = `id, event_id, title, artist, external_ref, score, created_at`

func scanRequest(row rowScanner) (models.Request, error) {
	var r models.Request
	var ref sql.NullString
	if err := row.Scan(&r.ID, &r.EventID, &r.Title, &r.Artist, &ref, &r.Score, &r.CreatedAt); err != nil {
		return models.Request{}, err
	}
	r.ExternalRef = stringPtr(ref)
	return r, nil
}

// CreateRequest adds a song request to an event with score 1 and records
// an "up" vote for the creator in the same transaction, so the creator's
// submission counts exactly like an explicit up vote.
func (s *Store) CreateRequest(ctx context.Context, eventID, creatorKey, title, artist string, externalRef *string) (models.Request, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return models.Request{}, fmt.Errorf("%w: title and artist are required", ErrInvalidArgument)
	}

	ref := nullableString(externalRef)
	req := models.Request{
		ID:          uuid.NewString(),
		EventID:     eventID,
		Title:       title,
		Artist:      artist,
		ExternalRef: stringPtr(ref),
		Score:       1,
		CreatedAt:   s.now(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM event WHERE id = $1)
		`, eventID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("query event: %w", err)
		}
		if !exists {
			return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}

		duplicate, err := requestExists(ctx, tx, eventID, title, artist)
		if err != nil {
			return err
		}
		if duplicate {
			return ErrDuplicateRequest
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO request (id, event_id, title, artist, external_ref, score, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, req.ID, req.EventID, req.Title, req.Artist, ref, req.Score, req.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert request: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (request_id, voter_key, directive, voted_at)
			VALUES ($1, $2, $3, $4)
		`, req.ID, creatorKey, string(voting.Up), req.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert creator vote: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateRequest) || errors.Is(err, ErrNotFound) {
			return models.Request{}, err
		}
		// A concurrent insert of the same song trips the unique index.
		if dup, checkErr := requestExists(ctx, s.db, eventID, title, artist); checkErr == nil && dup {
			return models.Request{}, ErrDuplicateRequest
		}
		return models.Request{}, err
	}

	slog.Info("request created", "event_id", eventID, "request_id", req.ID, "title", title, "artist", artist)
	return req, nil
}

type querier interface {
	queryRower
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func requestExists(ctx context.Context, q queryRower, eventID, title, artist string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM request
			WHERE event_id = $1 AND LOWER(title) = LOWER($2) AND LOWER(artist) = LOWER($3)
		)
	`, eventID, title, artist).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate request: %w", err)
	}
	return exists, nil
}

// GetRequest returns one request of an event.
func (s *Store) GetRequest(ctx context.Context, eventID, requestID string) (models.Request, error) {
	return getRequest(ctx, s.db, eventID, requestID)
}

func getRequest(ctx context.Context, q queryRower, eventID, requestID string) (models.Request, error) {
	req, err := scanRequest(q.QueryRowContext(ctx, `
		SELECT `+requestColumns+` FROM request WHERE id = $1 AND event_id = $2
	`, requestID, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, fmt.Errorf("request %s: %w", requestID, ErrNotFound)
	}
	if err != nil {
		return models.Request{}, fmt.Errorf("query request: %w", err)
	}
	return req, nil
}

// ListRequests returns the ranked queue of an event. The rank is computed
// on every call and never stored.
func (s *Store) ListRequests(ctx context.Context, eventID string) ([]models.Request, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM request
		WHERE event_id = $1
		ORDER BY score DESC, created_at ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := []models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return voting.Rank(requests), nil
}

// DeleteRequest removes a request and its ledger rows without archiving it.
func (s *Store) DeleteRequest(ctx context.Context, eventID, requestID string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return deleteRequestTx(ctx, tx, eventID, requestID)
	})
	if err != nil {
		return err
	}

	slog.Info("request deleted", "event_id", eventID, "request_id", requestID)
	return nil
}

// MarkPlayed archives a request for the DJ and then deletes it.
func (s *Store) MarkPlayed(ctx context.Context, djID, eventID, requestID string) (models.ArchiveEntry, error) {
	var entry models.ArchiveEntry
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		event, err := getEventForDJ(ctx, tx, djID, eventID)
		if err != nil {
			return err
		}

		req, err := getRequest(ctx, tx, eventID, requestID)
		if err != nil {
			return err
		}

		entry, err = s.archiveTx(ctx, tx, djID, event, req)
		if err != nil {
			return err
		}

		return deleteRequestTx(ctx, tx, eventID, requestID)
	})
	if err != nil {
		return models.ArchiveEntry{}, err
	}

	slog.Info("request played", "event_id", eventID, "request_id", requestID, "final_score", entry.FinalScore)
	return entry, nil
}

func deleteRequestTx(ctx context.Context, q querier, eventID, requestID string) error {
	if _, err := q.ExecContext(ctx, `
		DELETE FROM vote
		WHERE request_id IN (SELECT id FROM request WHERE id = $1 AND event_id = $2)
	`, requestID, eventID); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}

	res, err := q.ExecContext(ctx, `
		DELETE FROM request WHERE id = $1 AND event_id = $2
	`, requestID, eventID)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return requireAffected(res, "request "+requestID)
}
