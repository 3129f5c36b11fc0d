// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
	"github.com/danielhkuo/request-queue/voting"
)

// writeStoreError maps store and voting errors to the HTTP error body.
// notFound is the message used for ErrNotFound; anything unrecognized is
// logged and reported as a 500 with fallback as the message.
func writeStoreError(w http.ResponseWriter, err error, notFound, fallback string) {
	var dup *voting.DuplicateVoteError
	switch {
	case errors.As(err, &dup):
		middleware.KindError(w, http.StatusBadRequest, models.KindDuplicateVote, dup.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.KindError(w, http.StatusNotFound, models.KindNotFound, notFound)
	case errors.Is(err, store.ErrDuplicateRequest):
		middleware.KindError(w, http.StatusBadRequest, models.KindDuplicateRequest, "This song has already been requested")
	case errors.Is(err, voting.ErrInvalidDirective):
		middleware.KindError(w, http.StatusBadRequest, models.KindInvalidArgument, `voteType must be "up" or "down"`)
	case errors.Is(err, store.ErrInvalidArgument):
		middleware.KindError(w, http.StatusBadRequest, models.KindInvalidArgument, err.Error())
	case errors.Is(err, store.ErrDuplicateUsername):
		middleware.KindError(w, http.StatusConflict, models.KindConflict, "Username already taken")
	case errors.Is(err, store.ErrProtectedDJ):
		middleware.KindError(w, http.StatusForbidden, models.KindForbidden, "Superadmin cannot be deleted")
	default:
		slog.Error(fallback, "error", err)
		middleware.KindError(w, http.StatusInternalServerError, models.KindInternal, fallback)
	}
}
