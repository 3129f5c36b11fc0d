// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (godotenv). It never
overrides variables already set in the environment.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL URL or SQLite file path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: DJ token signing secret (required)
  - TokenTTL: DJ token lifetime (default: 24h)
  - EventCodeSalt: Secret for event code generation (required)
  - VoterKeySalt: Secret for voter identity hashing (default: EventCodeSalt)
  - AdminUsername, AdminPassword: Optional superadmin seed
  - BcryptCost: Password hash cost (0 = bcrypt default)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-token-ttl    DJ token lifetime
	-jwt-secret   Token signing secret
	-code-salt    Event code salt
	-voter-salt   Voter identity salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	TOKEN_TTL       → -token-ttl
	JWT_SECRET      → -jwt-secret
	EVENT_CODE_SALT → -code-salt
	VOTER_KEY_SALT  → -voter-salt

ADMIN_USERNAME, ADMIN_PASSWORD and BCRYPT_COST are environment only.

CLI flags take precedence over environment variables.
*/
package cliparse
