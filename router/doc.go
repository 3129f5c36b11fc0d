// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the request queue API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Guest page (public, uses the event code):

	GET  /events/{code}                    - Event info
	GET  /events/{code}/requests           - Ranked queue
	POST /events/{code}/requests           - Request a song
	POST /events/{code}/requests/{id}/vote - Vote up or down

DJ accounts:

	POST /dj/register
	POST /dj/login - Returns a bearer token

DJ dashboard (requires Authorization: Bearer):

	GET    /dj/events                                   - List events
	POST   /dj/events                                   - Create (and activate) event
	DELETE /dj/events/{id}                              - Delete event, no archive
	POST   /dj/events/{id}/activate                     - Make the only active event
	GET    /dj/events/{id}/requests                     - Ranked queue
	POST   /dj/events/{id}/requests/{requestId}/played  - Archive and remove
	DELETE /dj/events/{id}/requests/{requestId}         - Remove, no archive
	GET    /dj/archive
	DELETE /dj/archive                                  - Clear archive
	DELETE /dj/archive/{id}

Superadmin (superadmin role):

	GET    /admin/djs
	DELETE /admin/djs/{id}          - Archive all requests, then delete
	GET    /admin/djs/{id}/archive
	PUT    /admin/djs/{id}/password

# Handler Initialization

Handlers share one store.Store and one auth.TokenManager:

	requestHandler := handlers.NewRequestHandler(s, cfg)
	accountHandler := handlers.NewAccountHandler(s, cfg, tokens)
*/
package router
