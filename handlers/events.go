// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
)

// EventHandler serves the DJ dashboard. Every route sits behind
// middleware.RequireDJ and only touches events the DJ owns.
type EventHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewEventHandler(s *store.Store, cfg cliparse.Config) *EventHandler {
	return &EventHandler{store: s, cfg: cfg}
}

// currentDJ returns the DJ ID from the token claims
func currentDJ(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.DJFromContext(r)
	if !ok || claims.DJID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	return claims.DJID, true
}

// ownedEvent loads {id} for the current DJ
func (h *EventHandler) ownedEvent(w http.ResponseWriter, r *http.Request) (models.Event, bool) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return models.Event{}, false
	}

	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return models.Event{}, false
	}

	event, err := h.store.GetEventForDJ(r.Context(), djID, eventID)
	if err != nil {
		writeStoreError(w, err, "Event not found", "Failed to load event")
		return models.Event{}, false
	}
	return event, true
}

// ListEvents handles GET /dj/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	events, err := h.store.ListEvents(r.Context(), djID)
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to load events")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}

// CreateEvent handles POST /dj/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// The token may outlive a deleted account
	if _, err := h.store.GetDJ(r.Context(), djID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "DJ account no longer exists")
			return
		}
		slog.Error("failed to load dj", "error", err, "dj_id", djID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	event, err := h.store.CreateEvent(r.Context(), djID, req.Name)
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to create event")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, event)
}

// DeleteEvent handles DELETE /dj/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteEvent(r.Context(), djID, r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Event not found", "Failed to delete event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Event deleted"})
}

// ActivateEvent handles POST /dj/events/{id}/activate
func (h *EventHandler) ActivateEvent(w http.ResponseWriter, r *http.Request) {
	djID, ok := currentDJ(w, r)
	if !ok {
		return
	}

	event, err := h.store.ActivateEvent(r.Context(), djID, r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Event not found", "Failed to activate event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, event)
}

// ListRequests handles GET /dj/events/{id}/requests
func (h *EventHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	event, ok := h.ownedEvent(w, r)
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

// MarkPlayed handles POST /dj/events/{id}/requests/{requestId}/played.
// The request is archived and then removed from the queue.
func (h *EventHandler) MarkPlayed(w http.ResponseWriter, r *http.Request) {
	event, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	entry, err := h.store.MarkPlayed(r.Context(), event.DJID, event.ID, r.PathValue("requestId"))
	if err != nil {
		writeStoreError(w, err, "Request not found", "Failed to archive request")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entry)
}

// DeleteRequest handles DELETE /dj/events/{id}/requests/{requestId}.
// The request is removed without archiving.
func (h *EventHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	event, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteRequest(r.Context(), event.ID, r.PathValue("requestId")); err != nil {
		writeStoreError(w, err, "Request not found", "Failed to delete request")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Request deleted"})
}
