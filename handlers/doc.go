// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the request queue API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - RequestHandler: Public guest page (event, queue, new request, vote)
  - EventHandler: DJ events and queue management
  - ArchiveHandler: DJ archive
  - AccountHandler: Registration, login and superadmin operations

	requestHandler := handlers.NewRequestHandler(s, cfg)

# Guest Flow

	GET  /events/{code}/requests           → ListRequests (ranked)
	POST /events/{code}/requests           → CreateRequest (score 1, creator counts as up vote)
	POST /events/{code}/requests/{id}/vote → Vote {"voteType": "up"|"down"}

The voter is identified by middleware.VoterKey, never by the body.
A repeated vote returns 400 with kind DuplicateVote and the message
"already voted up" or "already voted down".

# DJ Flow

DJ handlers run behind middleware.RequireDJ and read the DJ ID from the
token claims. Events of other DJs answer 404.

	POST /dj/events/{id}/requests/{requestId}/played → MarkPlayed (archive + delete)
	DELETE /dj/events/{id}/requests/{requestId}      → DeleteRequest (no archive)

# Errors

writeStoreError maps store and voting sentinel errors to status codes
and error kinds.
*/
package handlers
