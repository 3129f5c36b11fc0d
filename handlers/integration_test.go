// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/request-queue/auth"
	"github.com/danielhkuo/request-queue/middleware"
	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/store"
	"github.com/danielhkuo/request-queue/testutil"
)

// TestFullRequestWorkflow tests the complete end-to-end workflow:
// 1. DJ registers and logs in
// 2. DJ creates an event
// 3. Guests submit requests
// 4. Guests vote (including a repeat and a flip)
// 5. Queue is ranked
// 6. DJ marks the top request played
// 7. Archive holds the snapshot
func TestFullRequestWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	s := store.New(db, cfg.EventCodeSalt)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	accounts := NewAccountHandler(s, cfg, tokens)
	events := NewEventHandler(s, cfg)
	requests := NewRequestHandler(s, cfg)
	archive := NewArchiveHandler(s, cfg)

	serve := func(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	// Step 1: Register and log in
	creds := models.CredentialsRequest{Username: "dj-erin", Password: "mixmaster"}
	w := serve(accounts.Register, testutil.MakeRequest("POST", "/dj/register", creds, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Register failed: %d - %s", w.Code, w.Body.String())
	}

	w = serve(accounts.Login, testutil.MakeRequest("POST", "/dj/login", creds, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Login failed: %d - %s", w.Code, w.Body.String())
	}
	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	headers := bearer(login.Token)

	// Step 2: Create an event
	w = serve(middleware.RequireDJ(tokens, events.CreateEvent),
		testutil.MakeRequest("POST", "/dj/events", models.CreateEventRequest{Name: "Rooftop"}, headers))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create event failed: %d - %s", w.Code, w.Body.String())
	}
	var event models.Event
	testutil.AssertJSON(t, w, &event)
	t.Logf("Step 2 - Created event %s with code %s", event.ID, event.Code)

	// Step 3: Guests submit requests
	a := mustCreateRequest(t, requests, event.Code, "10.0.0.1", "Song A", "Artist")
	b := mustCreateRequest(t, requests, event.Code, "10.0.0.2", "Song B", "Artist")

	// Step 4: Votes
	voteSteps := []struct {
		requestID      string
		ip             string
		voteType       string
		expectedStatus int
	}{
		{a.ID, "10.0.0.3", "down", http.StatusOK},         // A: 0
		{a.ID, "10.0.0.3", "down", http.StatusBadRequest}, // A: 0, repeat
		{a.ID, "10.0.0.3", "up", http.StatusOK},           // A: 1, flip
		{b.ID, "10.0.0.1", "up", http.StatusOK},           // B: 2
		{b.ID, "10.0.0.3", "up", http.StatusOK},           // B: 3
	}
	for i, step := range voteSteps {
		w := vote(requests, event.Code, step.requestID, step.ip, step.voteType)
		if w.Code != step.expectedStatus {
			t.Fatalf("Step 4.%d - expected %d, got %d - %s", i, step.expectedStatus, w.Code, w.Body.String())
		}
	}

	// Step 5: Ranked queue
	req := httptest.NewRequest("GET", "/events/"+event.Code+"/requests", nil)
	req.SetPathValue("code", event.Code)
	w = serve(requests.ListRequests, req)
	var queue []models.Request
	testutil.AssertJSON(t, w, &queue)
	if len(queue) != 2 || queue[0].ID != b.ID || queue[0].Score != 3 || queue[1].Score != 1 {
		t.Fatalf("Step 5 - unexpected queue %+v", queue)
	}

	// Step 6: Mark the top request played
	req = testutil.MakeRequest("POST", "/dj/events/"+event.ID+"/requests/"+b.ID+"/played", nil, headers)
	req.SetPathValue("id", event.ID)
	req.SetPathValue("requestId", b.ID)
	w = serve(middleware.RequireDJ(tokens, events.MarkPlayed), req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Mark played failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 7: Archive
	w = serve(middleware.RequireDJ(tokens, archive.ListArchive), testutil.MakeRequest("GET", "/dj/archive", nil, headers))
	var entries []models.ArchiveEntry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 1 || entries[0].Title != "Song B" || entries[0].FinalScore != 3 || entries[0].EventName != "Rooftop" {
		t.Fatalf("Step 7 - unexpected archive %+v", entries)
	}

	// The queue now only holds A
	req = httptest.NewRequest("GET", "/events/"+event.Code+"/requests", nil)
	req.SetPathValue("code", event.Code)
	w = serve(requests.ListRequests, req)
	queue = nil
	testutil.AssertJSON(t, w, &queue)
	if len(queue) != 1 || queue[0].ID != a.ID {
		t.Errorf("Expected only Song A left, got %+v", queue)
	}
}

// TestDuplicateRegistration verifies usernames are unique
func TestDuplicateRegistration(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAccountHandler(env.store, env.cfg, env.tokens)

	creds := models.CredentialsRequest{Username: "dj-frank", Password: "pw"}
	for i, expected := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		handler.Register(w, testutil.MakeRequest("POST", "/dj/register", creds, nil))
		if w.Code != expected {
			t.Errorf("Attempt %d: expected %d, got %d", i, expected, w.Code)
		}
	}
}
