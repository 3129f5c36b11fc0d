// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/request-queue/models"
)

func (s *Store) archiveTx(ctx context.Context, tx *sql.Tx, djID string, event models.Event, req models.Request) (models.ArchiveEntry, error) {
	entry := models.ArchiveEntry{
		ID:          uuid.NewString(),
		DJID:        djID,
		EventName:   event.Name,
		EventCode:   event.Code,
		Title:       req.Title,
		Artist:      req.Artist,
		ExternalRef: req.ExternalRef,
		FinalScore:  req.Score,
		CreatedAt:   req.CreatedAt,
		ArchivedAt:  s.now(),
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO archive (id, dj_id, event_name, event_code, title, artist, external_ref, final_score, created_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, entry.ID, entry.DJID, entry.EventName, entry.EventCode, entry.Title, entry.Artist,
		nullableString(entry.ExternalRef), entry.FinalScore, entry.CreatedAt, entry.ArchivedAt)
	if err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("insert archive entry: %w", err)
	}
	return entry, nil
}

// ListArchive returns a DJ's archive, most recently archived first.
func (s *Store) ListArchive(ctx context.Context, djID string) ([]models.ArchiveEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dj_id, event_name, event_code, title, artist, external_ref, final_score, created_at, archived_at
		FROM archive
		WHERE dj_id = $1
		ORDER BY archived_at DESC
	`, djID)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	entries := []models.ArchiveEntry{}
	for rows.Next() {
		var e models.ArchiveEntry
		var ref sql.NullString
		if err := rows.Scan(
			&e.ID, &e.DJID, &e.EventName, &e.EventCode, &e.Title, &e.Artist,
			&ref, &e.FinalScore, &e.CreatedAt, &e.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archive entry: %w", err)
		}
		e.ExternalRef = stringPtr(ref)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteArchiveEntry removes one entry owned by the DJ.
func (s *Store) DeleteArchiveEntry(ctx context.Context, djID, entryID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM archive WHERE id = $1 AND dj_id = $2
	`, entryID, djID)
	if err != nil {
		return fmt.Errorf("delete archive entry: %w", err)
	}
	if err := requireAffected(res, "archive entry "+entryID); err != nil {
		return err
	}

	slog.Info("archive entry deleted", "dj_id", djID, "entry_id", entryID)
	return nil
}

// ClearArchive removes every archive entry of the DJ and returns the count.
func (s *Store) ClearArchive(ctx context.Context, djID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM archive WHERE dj_id = $1`, djID)
	if err != nil {
		return 0, fmt.Errorf("clear archive: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	slog.Info("archive cleared", "dj_id", djID, "deleted", n)
	return n, nil
}
