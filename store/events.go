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

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/models"
)

const eventColumns = `id, dj_id, name, code, active, created_at`

func scanEvent(row rowScanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.DJID, &e.Name, &e.Code, &e.Active, &e.CreatedAt)
	return e, err
}

// CreateEvent creates a new event for a DJ. The new event becomes the DJ's
// active event.
func (s *Store) CreateEvent(ctx context.Context, djID, name string) (models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Event{}, fmt.Errorf("%w: event name is required", ErrInvalidArgument)
	}

	id := uuid.NewString()
	event := models.Event{
		ID:        id,
		DJID:      djID,
		Name:      name,
		Code:      auth.GenerateEventCode(id, s.codeSalt),
		Active:    true,
		CreatedAt: s.now(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE event SET active = $1 WHERE dj_id = $2
		`, false, djID); err != nil {
			return fmt.Errorf("deactivate events: %w", err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO event (id, dj_id, name, code, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, event.ID, event.DJID, event.Name, event.Code, event.Active, event.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}

	slog.Info("event created", "event_id", event.ID, "dj_id", djID, "code", event.Code)
	return event, nil
}

// ListEvents returns a DJ's events with their live request counts, newest first.
func (s *Store) ListEvents(ctx context.Context, djID string) ([]models.EventSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.dj_id, e.name, e.code, e.active, e.created_at,
		       (SELECT COUNT(*) FROM request r WHERE r.event_id = e.id) AS request_count
		FROM event e
		WHERE e.dj_id = $1
		ORDER BY e.created_at DESC
	`, djID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []models.EventSummary{}
	for rows.Next() {
		var sum models.EventSummary
		if err := rows.Scan(
			&sum.ID, &sum.DJID, &sum.Name, &sum.Code, &sum.Active, &sum.CreatedAt,
			&sum.RequestCount,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, sum)
	}

	return events, rows.Err()
}

// GetEventByCode looks up an event by its public code.
func (s *Store) GetEventByCode(ctx context.Context, code string) (models.Event, error) {
	event, err := scanEvent(s.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM event WHERE code = $1
	`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, fmt.Errorf("event %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("query event: %w", err)
	}
	return event, nil
}

// GetEventForDJ returns an event only if the DJ owns it.
func (s *Store) GetEventForDJ(ctx context.Context, djID, eventID string) (models.Event, error) {
	return getEventForDJ(ctx, s.db, djID, eventID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getEventForDJ(ctx context.Context, q queryRower, djID, eventID string) (models.Event, error) {
	event, err := scanEvent(q.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM event WHERE id = $1 AND dj_id = $2
	`, eventID, djID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("query event: %w", err)
	}
	return event, nil
}

// ActivateEvent makes eventID the DJ's only active event.
func (s *Store) ActivateEvent(ctx context.Context, djID, eventID string) (models.Event, error) {
	var event models.Event
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		event, err = getEventForDJ(ctx, tx, djID, eventID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE event SET active = $1 WHERE dj_id = $2 AND id <> $3
		`, false, djID, eventID); err != nil {
			return fmt.Errorf("deactivate events: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE event SET active = $1 WHERE id = $2
		`, true, eventID); err != nil {
			return fmt.Errorf("activate event: %w", err)
		}
		event.Active = true
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}

	slog.Info("event activated", "event_id", eventID, "dj_id", djID)
	return event, nil
}

// DeleteEvent removes an event with all its requests and votes.
// Requests are not archived.
func (s *Store) DeleteEvent(ctx context.Context, djID, eventID string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getEventForDJ(ctx, tx, djID, eventID); err != nil {
			return err
		}
		return deleteEventTx(ctx, tx, eventID)
	})
	if err != nil {
		return err
	}

	slog.Info("event deleted", "event_id", eventID, "dj_id", djID)
	return nil
}

func deleteEventTx(ctx context.Context, tx *sql.Tx, eventID string) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM vote WHERE request_id IN (SELECT id FROM request WHERE event_id = $1)
	`, eventID); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM request WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("delete requests: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM event WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(res, "event "+eventID)
}
