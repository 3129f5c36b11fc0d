// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the request queue API server.

Guests open an event by its short code, request songs and vote them up or
down. DJs manage their events, mark songs played and keep an archive.

# Starting the Server

The server requires environment variables (or a .env file) or CLI flags:

	DATABASE_URL=queue.db JWT_SECRET=... EVENT_CODE_SALT=... go run .

With PostgreSQL:

	go run . -t postgres -d "postgres://..." -p 3318

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): DJ token signing secret
  - EVENT_CODE_SALT (-code-salt): Secret for event code generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (-token-ttl): DJ token lifetime (default: 24h)
  - VOTER_KEY_SALT (-voter-salt): Voter identity salt (default: EVENT_CODE_SALT)
  - BCRYPT_COST: Password hash cost
  - ADMIN_USERNAME, ADMIN_PASSWORD: Superadmin created or promoted at startup

# Architecture

  - handlers: HTTP request handlers (guest page, DJ events, archive, accounts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer auth, voter identity
  - store: Transactions over events, requests, the vote ledger and the archive
  - voting: Vote state machine, score floor, ranking
  - models: Request/response and domain types
  - auth: Event codes, IP hashing, passwords, tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
