// ABOUTME: JSON response helpers and wire types for the v1 API
// ABOUTME: Wire structs are the only place store records meet serialization

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stashbox/stashd/internal/store"
)

// userResponse is the JSON shape of a full user record.
type userResponse struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Role           string `json:"role"`
	Token          string `json:"token"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// entryResponse is the JSON shape of a full key-value entry.
type entryResponse struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// tokenResponse carries the freshly minted token back to the creating
// admin. This is the only disclosure besides the owner's own GET /v1/user.
type tokenResponse struct {
	Token string `json:"token"`
}

// valueResponse carries a bare entry value for GET /v1/kv.
type valueResponse struct {
	Value string `json:"value"`
}

func newUserResponse(u *store.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		Role:           string(u.Role),
		Token:          u.Token,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

func newEntryResponse(e *store.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Key:       e.Key,
		Value:     e.Value,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
