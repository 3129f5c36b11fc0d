// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CredentialsRequest: username, password
  - CreateEventRequest: name
  - CreateSongRequest: title, artist, externalRef
  - VoteRequest: voteType ("up" or "down")

# Response Types

Types for JSON responses:

  - RegisterResponse: id, username
  - LoginResponse: token, username, role
  - MessageResponse: message
  - ClearArchiveResponse: deleted
  - ErrorResponse: error, kind, message

# Domain Types

  - DJ: account owning events and an archive
  - Event: a DJ session reachable by its short code
  - EventSummary: Event plus its live request count
  - Request: a song request with its running score
  - VoteRecord: one voter's current directive on a request
  - ArchiveEntry: snapshot of a played request

# Constants

Token roles:

	RoleDJ         = "dj"
	RoleSuperadmin = "superadmin"

Error kinds:

	KindNotFound, KindDuplicateRequest, KindDuplicateVote,
	KindInvalidArgument, KindUnauthorized, KindForbidden,
	KindConflict, KindInternal
*/
package models
