// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
	"github.com/danielhkuo/request-queue/voting"
)

// RequestHandler serves the public guest page of an event
type RequestHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewRequestHandler(s *store.Store, cfg cliparse.Config) *RequestHandler {
	return &RequestHandler{store: s, cfg: cfg}
}

// eventByCode resolves the {code} path value, writing the error response
// itself when the event does not exist
func (h *RequestHandler) eventByCode(w http.ResponseWriter, r *http.Request) (models.Event, bool) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event code is required")
		return models.Event{}, false
	}

	event, err := h.store.GetEventByCode(r.Context(), code)
	if err != nil {
		writeStoreError(w, err, "Event not found", "Failed to load event")
		return models.Event{}, false
	}
	return event, true
}

// GetEvent handles GET /events/{code}
func (h *RequestHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.eventByCode(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, event)
}

// ListRequests handles GET /events/{code}/requests
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	event, ok := h.eventByCode(w, r)
	if !ok {
		return
	}

	requests, err := h.store.ListRequests(r.Context(), event.ID)
	if err != nil {
		writeStoreError(w, err, "Event not found", "Failed to load requests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, requests)
}

// CreateRequest handles POST /events/{code}/requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	event, ok := h.eventByCode(w, r)
	if !ok {
		return
	}

	var req models.CreateSongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Artist) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	creator := middleware.VoterKey(r, h.cfg.VoterKeySalt)
	created, err := h.store.CreateRequest(r.Context(), event.ID, creator, req.Title, req.Artist, req.ExternalRef)
	if err != nil {
		writeStoreError(w, err, "Event not found", "Failed to create request")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Vote handles POST /events/{code}/requests/{id}/vote
func (h *RequestHandler) Vote(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	if requestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "request id is required")
		return
	}

	event, ok := h.eventByCode(w, r)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	directive, err := voting.ParseDirective(req.VoteType)
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}

	voter := middleware.VoterKey(r, h.cfg.VoterKeySalt)
	updated, err := h.store.CastVote(r.Context(), event.ID, requestID, voter, directive)
	if err != nil {
		writeStoreError(w, err, "Request not found", "Failed to record vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}
