// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/request-queue/models"
	"github.com/danielhkuo/request-queue/testutil"
)

func TestGetEvent(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{"existing event", env.code, http.StatusOK},
		{"unknown code", "doesnotexist", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/events/"+tt.code, nil)
			req.SetPathValue("code", tt.code)
			w := httptest.NewRecorder()

			handler.GetEvent(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var event models.Event
				testutil.AssertJSON(t, w, &event)
				if event.ID != env.eventID || event.Name != "Friday Night" || !event.Active {
					t.Errorf("Unexpected event %+v", event)
				}
			} else if resp := decodeError(t, w); resp.Kind != models.KindNotFound {
				t.Errorf("Expected kind NotFound, got %q", resp.Kind)
			}
		})
	}
}

func TestCreateRequest(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	mustCreateRequest(t, handler, env.code, "10.0.0.1", "Blue Monday", "New Order")

	tests := []struct {
		name           string
		code           string
		body           interface{}
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "valid request",
			code:           env.code,
			body:           models.CreateSongRequest{Title: "Ceremony", Artist: "New Order"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate ignores case",
			code:           env.code,
			body:           models.CreateSongRequest{Title: "blue MONDAY", Artist: "new order"},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   models.KindDuplicateRequest,
		},
		{
			name:           "same title other artist",
			code:           env.code,
			body:           models.CreateSongRequest{Title: "Blue Monday", Artist: "Orkestra Obsolete"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			code:           env.code,
			body:           models.CreateSongRequest{Artist: "New Order"},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   models.KindInvalidArgument,
		},
		{
			name:           "blank artist",
			code:           env.code,
			body:           models.CreateSongRequest{Title: "Temptation", Artist: "   "},
			expectedStatus: http.StatusBadRequest,
			expectedKind:   models.KindInvalidArgument,
		},
		{
			name:           "invalid JSON",
			code:           env.code,
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
			expectedKind:   models.KindInvalidArgument,
		},
		{
			name:           "unknown event",
			code:           "doesnotexist",
			body:           models.CreateSongRequest{Title: "Regret", Artist: "New Order"},
			expectedStatus: http.StatusNotFound,
			expectedKind:   models.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/events/"+tt.code+"/requests", tt.body, nil)
			req.SetPathValue("code", tt.code)
			testutil.FromIP(req, "10.0.0.2")
			w := httptest.NewRecorder()

			handler.CreateRequest(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var created models.Request
				testutil.AssertJSON(t, w, &created)
				if created.Score != 1 {
					t.Errorf("Expected new request score 1, got %d", created.Score)
				}
				return
			}
			if resp := decodeError(t, w); resp.Kind != tt.expectedKind {
				t.Errorf("Expected kind %q, got %q", tt.expectedKind, resp.Kind)
			}
		})
	}
}

func TestCreateRequest_ExternalRef(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	ref := "spotify:track:0"
	req := testutil.MakeRequest("POST", "/events/"+env.code+"/requests", models.CreateSongRequest{
		Title:       "Age of Consent",
		Artist:      "New Order",
		ExternalRef: &ref,
	}, nil)
	req.SetPathValue("code", env.code)
	w := httptest.NewRecorder()

	handler.CreateRequest(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.Request
	testutil.AssertJSON(t, w, &created)
	if created.ExternalRef == nil || *created.ExternalRef != ref {
		t.Errorf("Expected externalRef %q, got %v", ref, created.ExternalRef)
	}
}

// A down vote, a repeated down vote and a flip back to up
func TestVote_DownRepeatFlip(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	song := mustCreateRequest(t, handler, env.code, "10.0.0.1", "Song A", "Artist")

	steps := []struct {
		voteType       string
		expectedStatus int
		expectedScore  int
		expectedMsg    string
	}{
		{"down", http.StatusOK, 0, ""},
		{"down", http.StatusBadRequest, 0, "already voted down"},
		{"up", http.StatusOK, 1, ""},
		{"up", http.StatusBadRequest, 1, "already voted up"},
	}

	for i, step := range steps {
		w := vote(handler, env.code, song.ID, "10.0.0.2", step.voteType)
		testutil.AssertStatus(t, w, step.expectedStatus)

		if step.expectedStatus == http.StatusOK {
			var updated models.Request
			testutil.AssertJSON(t, w, &updated)
			if updated.Score != step.expectedScore {
				t.Errorf("Step %d: expected score %d, got %d", i, step.expectedScore, updated.Score)
			}
		} else {
			resp := decodeError(t, w)
			if resp.Kind != models.KindDuplicateVote || resp.Message != step.expectedMsg {
				t.Errorf("Step %d: unexpected error %+v", i, resp)
			}
		}

		stored, err := env.store.GetRequest(t.Context(), env.eventID, song.ID)
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		if stored.Score != step.expectedScore {
			t.Errorf("Step %d: expected stored score %d, got %d", i, step.expectedScore, stored.Score)
		}
	}
}

// The creator already counts as an up voter
func TestVote_CreatorIsUpVoter(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	song := mustCreateRequest(t, handler, env.code, "10.0.0.1", "Song B", "Artist")

	w := vote(handler, env.code, song.ID, "10.0.0.1", "up")
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if resp := decodeError(t, w); resp.Message != "already voted up" {
		t.Errorf("Expected 'already voted up', got %q", resp.Message)
	}

	w = vote(handler, env.code, song.ID, "10.0.0.3", "up")
	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Request
	testutil.AssertJSON(t, w, &updated)
	if updated.Score != 2 {
		t.Errorf("Expected score 2, got %d", updated.Score)
	}
}

func TestVote_Errors(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	song := mustCreateRequest(t, handler, env.code, "10.0.0.1", "Song", "Artist")

	_, otherCode := testutil.CreateTestEvent(t, env.db, env.cfg, env.djID, "Other")

	tests := []struct {
		name           string
		code           string
		requestID      string
		voteType       string
		expectedStatus int
		expectedKind   string
	}{
		{"invalid vote type", env.code, song.ID, "sideways", http.StatusBadRequest, models.KindInvalidArgument},
		{"uppercase vote type", env.code, song.ID, "UP", http.StatusBadRequest, models.KindInvalidArgument},
		{"empty vote type", env.code, song.ID, "", http.StatusBadRequest, models.KindInvalidArgument},
		{"unknown request", env.code, "missing", "up", http.StatusNotFound, models.KindNotFound},
		{"unknown event", "doesnotexist", song.ID, "up", http.StatusNotFound, models.KindNotFound},
		{"request of another event", otherCode, song.ID, "up", http.StatusNotFound, models.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := vote(handler, tt.code, tt.requestID, "10.0.0.9", tt.voteType)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if resp := decodeError(t, w); resp.Kind != tt.expectedKind {
				t.Errorf("Expected kind %q, got %q", tt.expectedKind, resp.Kind)
			}
		})
	}

	stored, err := env.store.GetRequest(t.Context(), env.eventID, song.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Score != 1 {
		t.Errorf("Rejected votes changed the score to %d", stored.Score)
	}
}

func TestVote_IdentityFromForwardedHeader(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	song := mustCreateRequest(t, handler, env.code, "10.0.0.1", "Song", "Artist")

	// Same proxy, different forwarded clients
	for i, client := range []string{"203.0.113.1", "203.0.113.2"} {
		req := testutil.MakeRequest("POST", "/events/"+env.code+"/requests/"+song.ID+"/vote",
			models.VoteRequest{VoteType: "up"}, map[string]string{"X-Forwarded-For": client + ", 10.0.0.254"})
		req.SetPathValue("code", env.code)
		req.SetPathValue("id", song.ID)
		testutil.FromIP(req, "10.0.0.254")
		w := httptest.NewRecorder()

		handler.Vote(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var updated models.Request
		testutil.AssertJSON(t, w, &updated)
		if updated.Score != 2+i {
			t.Errorf("Vote %d: expected score %d, got %d", i, 2+i, updated.Score)
		}
	}
}

func TestListRequests_Ranked(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	base := time.Now().UTC().Add(-time.Hour)
	first := testutil.CreateTestRequest(t, env.db, env.eventID, "First", "A", 2, base)
	second := testutil.CreateTestRequest(t, env.db, env.eventID, "Second", "A", 2, base.Add(time.Minute))
	top := testutil.CreateTestRequest(t, env.db, env.eventID, "Top", "A", 7, base.Add(2*time.Minute))
	bottom := testutil.CreateTestRequest(t, env.db, env.eventID, "Bottom", "A", 0, base.Add(-time.Minute))

	req := httptest.NewRequest("GET", "/events/"+env.code+"/requests", nil)
	req.SetPathValue("code", env.code)
	w := httptest.NewRecorder()

	handler.ListRequests(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var requests []models.Request
	testutil.AssertJSON(t, w, &requests)

	want := []string{top, first, second, bottom}
	if len(requests) != len(want) {
		t.Fatalf("Expected %d requests, got %d", len(want), len(requests))
	}
	for i, id := range want {
		if requests[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s (%s)", i, id, requests[i].ID, requests[i].Title)
		}
	}
}

func TestListRequests_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRequestHandler(env.store, env.cfg)

	req := httptest.NewRequest("GET", "/events/"+env.code+"/requests", nil)
	req.SetPathValue("code", env.code)
	w := httptest.NewRecorder()

	handler.ListRequests(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}
