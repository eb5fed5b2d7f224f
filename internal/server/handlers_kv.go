// ABOUTME: Handlers for the /v1/kv surface
// ABOUTME: Owner id always comes from the resolved identity, never the body

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stashbox/stashd/internal/auth"
	"github.com/stashbox/stashd/internal/store"
)

// entryRequest is the JSON request body for POST and PUT /v1/kv.
type entryRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// handleCreateEntry handles POST /v1/kv.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := auth.MustFromContext(r.Context())
	entry, err := s.entries.CreateEntry(r.Context(), id.User.ID, req.Key, req.Value)
	if err != nil {
		if !errors.Is(err, store.ErrDuplicateKey) {
			s.logger.Error("creating entry", "user_id", id.User.ID, "key", req.Key, "error", err)
		}
		writeJSONError(w, http.StatusUnprocessableEntity, "could not create entry")
		return
	}

	writeJSON(w, http.StatusCreated, newEntryResponse(entry))
}

// handleReadEntry handles GET /v1/kv?key=K. Returns only the value, not the
// full entry.
func (s *Server) handleReadEntry(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	id := auth.MustFromContext(r.Context())
	entry, err := s.entries.GetEntry(r.Context(), id.User.ID, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("reading entry", "user_id", id.User.ID, "key", key, "error", err)
		}
		writeJSONError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, valueResponse{Value: entry.Value})
}

// handleUpdateEntry handles PUT /v1/kv. No upsert: an absent key fails.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := auth.MustFromContext(r.Context())
	entry, err := s.entries.UpdateEntry(r.Context(), id.User.ID, req.Key, req.Value)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("updating entry", "user_id", id.User.ID, "key", req.Key, "error", err)
		}
		writeJSONError(w, http.StatusUnprocessableEntity, "could not update entry")
		return
	}

	writeJSON(w, http.StatusOK, newEntryResponse(entry))
}

// handleDeleteEntry handles DELETE /v1/kv?key=K. Returns the deleted entry.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	id := auth.MustFromContext(r.Context())
	entry, err := s.entries.DeleteEntry(r.Context(), id.User.ID, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("deleting entry", "user_id", id.User.ID, "key", key, "error", err)
		}
		writeJSONError(w, http.StatusUnprocessableEntity, "could not delete entry")
		return
	}

	writeJSON(w, http.StatusOK, newEntryResponse(entry))
}
