// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/cliparse"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
	"github.com/danielhkuo/request-queue/testutil"
)

// testEnv is one DJ with one active event on a fresh database
type testEnv struct {
	db      *sql.DB
	cfg     cliparse.Config
	store   *store.Store
	tokens  *auth.TokenManager
	djID    string
	token   string
	eventID string
	code    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	djID := testutil.CreateTestDJ(t, db, "dj-alice", "turntables", false)
	eventID, code := testutil.CreateTestEvent(t, db, cfg, djID, "Friday Night")

	return testEnv{
		db:      db,
		cfg:     cfg,
		store:   store.New(db, cfg.EventCodeSalt),
		tokens:  auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		djID:    djID,
		token:   testutil.TestToken(t, cfg, djID, "dj-alice", models.RoleDJ),
		eventID: eventID,
		code:    code,
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// serveDJ runs a DJ handler behind RequireDJ so the claims reach the context
func (e testEnv) serveDJ(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.RequireDJ(e.tokens, h)(w, req)
	return w
}

// postRequest creates a song request on the public page from ip
func postRequest(t *testing.T, h *RequestHandler, code, ip, title, artist string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/events/"+code+"/requests", models.CreateSongRequest{
		Title:  title,
		Artist: artist,
	}, nil)
	req.SetPathValue("code", code)
	testutil.FromIP(req, ip)

	w := httptest.NewRecorder()
	h.CreateRequest(w, req)
	return w
}

// mustCreateRequest creates a request and returns it, failing the test on error
func mustCreateRequest(t *testing.T, h *RequestHandler, code, ip, title, artist string) models.Request {
	t.Helper()

	w := postRequest(t, h, code, ip, title, artist)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create request: %d - %s", w.Code, w.Body.String())
	}

	var created models.Request
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode request: %v", err)
	}
	return created
}

// vote casts one vote on the public page from ip
func vote(h *RequestHandler, code, requestID, ip, voteType string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/events/"+code+"/requests/"+requestID+"/vote",
		models.VoteRequest{VoteType: voteType}, nil)
	req.SetPathValue("code", code)
	req.SetPathValue("id", requestID)
	testutil.FromIP(req, ip)

	w := httptest.NewRecorder()
	h.Vote(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}
