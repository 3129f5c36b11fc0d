package models

import "time"

// Role constants carried in DJ tokens
const (
	RoleDJ         = "dj"
	RoleSuperadmin = "superadmin"
)

// Error kinds returned in ErrorResponse.Kind
const (
	KindNotFound         = "NotFound"
	KindDuplicateRequest = "DuplicateRequest"
	KindDuplicateVote    = "DuplicateVote"
	KindInvalidArgument  = "InvalidArgument"
	KindUnauthorized     = "Unauthorized"
	KindForbidden        = "Forbidden"
	KindConflict         = "Conflict"
	KindInternal         = "Internal"
)

// Request types

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Name string `json:"name"`
}

type CreateSongRequest struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	ExternalRef *string `json:"externalRef,omitempty"`
}

// voteType is "up" or "down"
type VoteRequest struct {
	VoteType string `json:"voteType"`
}

// Response types

type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DeleteDJResponse struct {
	Message  string `json:"message"`
	Archived int    `json:"archived"`
}

type ClearArchiveResponse struct {
	Deleted int64 `json:"deleted"`
}

// Domain types

type DJ struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsSuperadmin bool      `json:"is_superadmin"`
	CreatedAt    time.Time `json:"created_at"`
}

type Event struct {
	ID        string    `json:"id"`
	DJID      string    `json:"dj_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type EventSummary struct {
	Event
	RequestCount int `json:"request_count"`
}

// Request is a song request inside an event. Score starts at 1.
type Request struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	ExternalRef *string   `json:"externalRef,omitempty"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

type VoteRecord struct {
	RequestID string    `json:"request_id"`
	VoterKey  string    `json:"-"` // Never expose in JSON
	Directive string    `json:"directive"`
	VotedAt   time.Time `json:"voted_at"`
}

// ArchiveEntry is a frozen copy of a played request. It outlives the event.
type ArchiveEntry struct {
	ID          string    `json:"id"`
	DJID        string    `json:"dj_id"`
	EventName   string    `json:"event_name"`
	EventCode   string    `json:"event_code"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	ExternalRef *string   `json:"externalRef,omitempty"`
	FinalScore  int       `json:"final_score"`
	CreatedAt   time.Time `json:"created_at"`
	ArchivedAt  time.Time `json:"archived_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
