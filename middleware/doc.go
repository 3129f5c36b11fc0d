// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# DJ Authentication

	mux.HandleFunc("GET /dj/events", middleware.WithLogging(
		middleware.RequireDJ(tokens, eventHandler.ListEvents)))

RequireDJ validates "Authorization: Bearer <token>" and stores the claims
in the request context; handlers read them with DJFromContext.
RequireSuperadmin also checks the superadmin role (403 otherwise).

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
	middleware.KindError(w, http.StatusBadRequest, models.KindDuplicateVote, "already voted up")

Error bodies are {"error": <status text>, "kind": <kind>, "message": <text>}.

# Voter Identity

	key := middleware.VoterKey(r, cfg.VoterKeySalt)

The client IP (X-Forwarded-For first hop, X-Real-IP, then RemoteAddr) is
hashed with the salt. Guests sharing a NAT share a key.
*/
package middleware
