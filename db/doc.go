// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Tables

  - dj: DJ accounts (bcrypt password hash, superadmin flag)
  - event: DJ events with a unique public code and an active flag
  - request: Song requests with a running score (never below 0)
  - vote: Vote ledger, primary key (request_id, voter_key)
  - archive: Snapshots of played requests

# Relationships

	dj 1──* event
	event 1──* request
	request 1──* vote
	dj 1··* archive (no foreign key)

Foreign keys do not cascade. The store deletes votes before requests and
requests before events inside one transaction.
*/
package db
