// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/handlers"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	s := store.New(db, cfg.EventCodeSalt)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	requestHandler := handlers.NewRequestHandler(s, cfg)
	eventHandler := handlers.NewEventHandler(s, cfg)
	archiveHandler := handlers.NewArchiveHandler(s, cfg)
	accountHandler := handlers.NewAccountHandler(s, cfg, tokens)

	dj := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireDJ(tokens, h))
	}
	superadmin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSuperadmin(tokens, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Guest page (public, uses event code)
	mux.HandleFunc("GET /events/{code}", middleware.WithLogging(requestHandler.GetEvent))
	mux.HandleFunc("GET /events/{code}/requests", middleware.WithLogging(requestHandler.ListRequests))
	mux.HandleFunc("POST /events/{code}/requests", middleware.WithLogging(requestHandler.CreateRequest))
	mux.HandleFunc("POST /events/{code}/requests/{id}/vote", middleware.WithLogging(requestHandler.Vote))

	// DJ accounts
	mux.HandleFunc("POST /dj/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /dj/login", middleware.WithLogging(accountHandler.Login))

	// DJ dashboard (bearer token)
	mux.HandleFunc("GET /dj/events", dj(eventHandler.ListEvents))
	mux.HandleFunc("POST /dj/events", dj(eventHandler.CreateEvent))
	mux.HandleFunc("DELETE /dj/events/{id}", dj(eventHandler.DeleteEvent))
	mux.HandleFunc("POST /dj/events/{id}/activate", dj(eventHandler.ActivateEvent))
	mux.HandleFunc("GET /dj/events/{id}/requests", dj(eventHandler.ListRequests))
	mux.HandleFunc("POST /dj/events/{id}/requests/{requestId}/played", dj(eventHandler.MarkPlayed))
	mux.HandleFunc("DELETE /dj/events/{id}/requests/{requestId}", dj(eventHandler.DeleteRequest))

	// Archive
	mux.HandleFunc("GET /dj/archive", dj(archiveHandler.ListArchive))
	mux.HandleFunc("DELETE /dj/archive", dj(archiveHandler.ClearArchive))
	mux.HandleFunc("DELETE /dj/archive/{id}", dj(archiveHandler.DeleteEntry))

	// Superadmin
	mux.HandleFunc("GET /admin/djs", superadmin(accountHandler.ListDJs))
	mux.HandleFunc("DELETE /admin/djs/{id}", superadmin(accountHandler.DeleteDJ))
	mux.HandleFunc("GET /admin/djs/{id}/archive", superadmin(accountHandler.DJArchive))
	mux.HandleFunc("PUT /admin/djs/{id}/password", superadmin(accountHandler.SetPassword))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("request-queue API v1"))
	})

	return mux
}
