// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/db"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// The pool is limited to one connection: every connection to :memory: would
// otherwise get its own empty database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		JWTSecret:     "test-jwt-secret-at-least-32-bytes!!",
		TokenTTL:      time.Hour,
		EventCodeSalt: "test-code-salt",
		VoterKeySalt:  "test-voter-salt",
		BcryptCost:    bcrypt.MinCost,
	}
}

// CreateTestDJ inserts a DJ with the given password and returns its ID
func CreateTestDJ(t *testing.T, conn *sql.DB, username, password string, superadmin bool) string {
	t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	id := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO dj (id, username, password_hash, is_superadmin, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, username, hash, superadmin, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test DJ: %v", err)
	}

	return id
}

// TestToken issues a DJ token signed with the test config secret
func TestToken(t *testing.T, cfg cliparse.Config, djID, username, role string) string {
	t.Helper()

	token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL).Issue(djID, username, role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestEvent inserts an active event and returns its ID and public code
func CreateTestEvent(t *testing.T, conn *sql.DB, cfg cliparse.Config, djID, name string) (eventID, code string) {
	t.Helper()

	eventID = uuid.NewString()
	code = auth.GenerateEventCode(eventID, cfg.EventCodeSalt)
	_, err := conn.Exec(`
		INSERT INTO event (id, dj_id, name, code, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, eventID, djID, name, code, true, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID, code
}

// CreateTestRequest inserts a request with an explicit score and creation
// time and no ledger rows, and returns its ID
func CreateTestRequest(t *testing.T, conn *sql.DB, eventID, title, artist string, score int, createdAt time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO request (id, event_id, title, artist, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, eventID, title, artist, score, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test request: %v", err)
	}

	return id
}

// CountRows counts the rows of a table matching a single-column filter
func CountRows(t *testing.T, conn *sql.DB, table, column, value string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+column+` = $1`, value).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// FromIP sets the client address seen by the voter identity heuristic
func FromIP(req *http.Request, ip string) *http.Request {
	req.RemoteAddr = ip + ":54321"
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
