// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/voting"
)

// CastVote applies one directive from voterKey to a request and returns
// the updated request.
//
// The whole read-modify-write runs in one transaction that first touches
// the request row, so votes on the same request serialize: two voters
// both apply, and a repeat from the same voter sees the first one's
// ledger row. A rejected vote (voting.ErrDuplicateVote) changes nothing.
func (s *Store) CastVote(ctx context.Context, eventID, requestID, voterKey string, d voting.Directive) (models.Request, error) {
	var (
		updated    models.Request
		transition voting.Transition
	)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// Row lock on PostgreSQL, write lock on SQLite.
		res, err := tx.ExecContext(ctx, `
			UPDATE request SET score = score WHERE id = $1 AND event_id = $2
		`, requestID, eventID)
		if err != nil {
			return fmt.Errorf("lock request: %w", err)
		}
		if err := requireAffected(res, "request "+requestID); err != nil {
			return err
		}

		state, err := ledgerState(ctx, tx, requestID, voterKey)
		if err != nil {
			return err
		}

		transition, err = voting.Apply(state, d)
		if err != nil {
			return err
		}

		current, err := getRequest(ctx, tx, eventID, requestID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (request_id, voter_key, directive, voted_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (request_id, voter_key) DO UPDATE SET
				directive = excluded.directive,
				voted_at = excluded.voted_at
		`, requestID, voterKey, string(transition.To.Directive()), s.now())
		if err != nil {
			return fmt.Errorf("upsert vote: %w", err)
		}

		current.Score = voting.ApplyScore(current.Score, transition.Delta)
		if _, err := tx.ExecContext(ctx, `
			UPDATE request SET score = $1 WHERE id = $2
		`, current.Score, requestID); err != nil {
			return fmt.Errorf("update score: %w", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return models.Request{}, err
	}

	slog.Info("vote cast",
		"event_id", eventID,
		"request_id", requestID,
		"directive", string(d),
		"flip", transition.Flip,
		"score", updated.Score,
	)
	return updated, nil
}

// GetVote returns the ledger row of a voter on a request.
func (s *Store) GetVote(ctx context.Context, requestID, voterKey string) (models.VoteRecord, error) {
	var v models.VoteRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT request_id, voter_key, directive, voted_at
		FROM vote
		WHERE request_id = $1 AND voter_key = $2
	`, requestID, voterKey).Scan(&v.RequestID, &v.VoterKey, &v.Directive, &v.VotedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VoteRecord{}, fmt.Errorf("vote: %w", ErrNotFound)
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("query vote: %w", err)
	}
	return v, nil
}

// CountVotes returns the number of ledger rows for a request.
func (s *Store) CountVotes(ctx context.Context, requestID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE request_id = $1
	`, requestID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return n, nil
}

func ledgerState(ctx context.Context, tx *sql.Tx, requestID, voterKey string) (voting.State, error) {
	var directive string
	err := tx.QueryRowContext(ctx, `
		SELECT directive FROM vote WHERE request_id = $1 AND voter_key = $2
	`, requestID, voterKey).Scan(&directive)
	if errors.Is(err, sql.ErrNoRows) {
		return voting.NoVote, nil
	}
	if err != nil {
		return voting.NoVote, fmt.Errorf("query vote: %w", err)
	}
	return voting.StateOf(voting.Directive(directive))
}
