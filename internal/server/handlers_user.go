// ABOUTME: Handlers for the /v1/user surface
// ABOUTME: Admin-gated creation/deletion plus self lookup by token

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/stashbox/stashd/internal/auth"
	"github.com/stashbox/stashd/internal/store"
)

// createUserRequest is the JSON request body for POST /v1/user.
type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleCreateUser handles POST /v1/user. Admin only. New users always get
// the ordinary role; admins exist solely through bootstrap.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.directory.Create(r.Context(), store.RoleUser, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, store.ErrDuplicateUsername) {
			s.logger.Error("creating user", "username", req.Username, "error", err)
		}
		writeJSONError(w, http.StatusUnprocessableEntity, "could not create user")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: user.Token})
}

// handleReadUser handles GET /v1/user. Returns the full record of the
// identity the token resolved to.
func (s *Server) handleReadUser(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, newUserResponse(id.User))
}

// handleDeleteUser handles DELETE /v1/user. Admin only. The request body is
// the bare username string, not JSON.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "reading request body")
		return
	}

	username := strings.TrimSpace(string(body))
	if _, err := s.directory.Delete(r.Context(), username); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("deleting user", "username", username, "error", err)
		}
		writeJSONError(w, http.StatusNotFound, "user not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}
