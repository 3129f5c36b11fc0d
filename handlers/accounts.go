// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
)

// AccountHandler serves DJ registration, login and the superadmin panel
type AccountHandler struct {
	store  *store.Store
	cfg    cliparse.Config
	tokens *auth.TokenManager
}

func NewAccountHandler(s *store.Store, cfg cliparse.Config, tokens *auth.TokenManager) *AccountHandler {
	return &AccountHandler{store: s, cfg: cfg, tokens: tokens}
}

func parseCredentials(w http.ResponseWriter, r *http.Request) (models.CredentialsRequest, bool) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return req, false
	}
	return req, true
}

// Register handles POST /dj/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		// bcrypt rejects passwords over 72 bytes
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password cannot be used")
		return
	}

	dj, err := h.store.CreateDJ(r.Context(), req.Username, hash, false)
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to register")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		ID:       dj.ID,
		Username: dj.Username,
	})
}

// Login handles POST /dj/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	dj, err := h.store.GetDJByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to load dj", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := auth.CheckPassword(dj.PasswordHash, req.Password); err != nil {
		slog.Info("failed login", "username", req.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	role := models.RoleDJ
	if dj.IsSuperadmin {
		role = models.RoleSuperadmin
	}

	token, err := h.tokens.Issue(dj.ID, dj.Username, role)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "dj_id", dj.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("dj logged in", "dj_id", dj.ID, "role", role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:    token,
		Username: dj.Username,
		Role:     role,
	})
}

// ListDJs handles GET /admin/djs
func (h *AccountHandler) ListDJs(w http.ResponseWriter, r *http.Request) {
	djs, err := h.store.ListDJs(r.Context())
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to load DJs")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, djs)
}

// DeleteDJ handles DELETE /admin/djs/{id}.
// All live requests of the DJ are archived before the account is removed.
func (h *AccountHandler) DeleteDJ(w http.ResponseWriter, r *http.Request) {
	archived, err := h.store.DeleteDJ(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to delete DJ")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteDJResponse{
		Message:  fmt.Sprintf("DJ deleted, %d requests archived", archived),
		Archived: archived,
	})
}

// DJArchive handles GET /admin/djs/{id}/archive.
// Works for deleted DJs too; their archive stays under the old ID.
func (h *AccountHandler) DJArchive(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListArchive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to load archive")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// SetPassword handles PUT /admin/djs/{id}/password
func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.SetPasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password cannot be used")
		return
	}

	if err := h.store.SetPassword(r.Context(), r.PathValue("id"), hash); err != nil {
		writeStoreError(w, err, "DJ not found", "Failed to change password")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password changed"})
}
