// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for the request queue.

	s := store.New(conn, cfg.EventCodeSalt)

# Votes

CastVote runs the whole vote in one transaction:

	touch request row → read ledger → voting.Apply → upsert ledger → write score

The touch serializes concurrent votes on the same request, so distinct
voters all apply and a repeated directive from one voter is rejected
with voting.ErrDuplicateVote.

CreateRequest seeds the creator's "up" ledger row, so the creator is
treated as an up voter from the start.

# Deletion

  - DeleteRequest: removes ledger rows, then the request. Not archived.
  - MarkPlayed: archives the request, then deletes it.
  - DeleteEvent: removes votes, requests and the event. Not archived.
  - DeleteDJ: archives every live request under the DJ's ID, then
    removes the DJ's events and account. Superadmins are protected.

# Errors

Callers map ErrNotFound, ErrDuplicateRequest, ErrDuplicateUsername,
ErrInvalidArgument and ErrProtectedDJ with errors.Is; they are always
wrapped.
*/
package store
