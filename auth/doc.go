// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides hashing, password, and token utilities.

# Event Codes

Event codes are the public lookup key guests type or scan:

	code := auth.GenerateEventCode(eventID, salt)

Codes are base62 encoded (alphanumeric only) from an HMAC-SHA256 of the
event ID, so the same ID and salt always produce the same code.

# Voter Identity

Guests are anonymous. Their identity key is a salted hash of the client
address:

	key := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256. Guests behind the
same NAT share a key; that is an accepted limitation.

# DJ Passwords

	hash, err := auth.HashPassword(password, bcrypt.DefaultCost)
	err := auth.CheckPassword(hash, password)

# DJ Tokens

DJ endpoints take an HS256 bearer token:

	tm := auth.NewTokenManager(secret, 24*time.Hour)
	token, err := tm.Issue(djID, username, models.RoleDJ)
	claims, err := tm.Validate(token)
*/
package auth
