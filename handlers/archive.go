// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
)

type ArchiveHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewArchiveHandler(s *store.Store, cfg cliparse.Config) *ArchiveHandler {
	return &ArchiveHandler{store: s, cfg: cfg}
}

// ListArchive handles GET /dj/archive
func (h *ArchiveHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	entries, err := h.store.ListArchive(r.Context(), djID)
	if err != nil {
		writeStoreError(w, err, "Archive not found", "Failed to load archive")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// DeleteEntry handles DELETE /dj/archive/{id}
func (h *ArchiveHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteArchiveEntry(r.Context(), djID, r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Archive entry not found", "Failed to delete archive entry")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Archive entry deleted"})
}

// ClearArchive handles DELETE /dj/archive
func (h *ArchiveHandler) ClearArchive(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	n, err := h.store.ClearArchive(r.Context(), djID)
	if err != nil {
		writeStoreError(w, err, "Archive not found", "Failed to clear archive")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClearArchiveResponse{Deleted: n})
}
