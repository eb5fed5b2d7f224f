// ABOUTME: HTTP middleware resolving bearer tokens to user identities
// ABOUTME: Distinguishes unauthenticated (no identity) from unauthorized (no role)

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stashbox/stashd/internal/store"
)

// Taxonomy errors. ErrUnauthenticated means no valid identity could be
// resolved; ErrUnauthorized means a valid identity lacks the required role.
// The two stay distinct even when a route maps them to the same wire status.
var (
	ErrUnauthenticated = errors.New("missing or invalid token")
	ErrUnauthorized    = errors.New("insufficient role")
)

// TokenResolver resolves a bearer token to a user identity.
type TokenResolver interface {
	ResolveByToken(ctx context.Context, token string) (*store.User, error)
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Authenticate resolves the request's bearer token to an Identity.
// Returns ErrUnauthenticated if the header is absent, malformed, or the
// token resolves to no user.
func Authenticate(r *http.Request, resolver TokenResolver) (*Identity, error) {
	token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		return nil, ErrUnauthenticated
	}

	user, err := resolver.ResolveByToken(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	return &Identity{User: user}, nil
}

// Middleware creates an HTTP middleware that resolves the bearer token and
// adds the Identity to the request context. Requests that fail to
// authenticate are rejected with rejectStatus; the /v1/kv and /v1/user
// surfaces historically use different statuses for the same failure.
func Middleware(resolver TokenResolver, rejectStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := Authenticate(r, resolver)
			if err != nil {
				writeError(w, rejectStatus, ErrUnauthenticated.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin creates an HTTP middleware that rejects non-admin identities
// with rejectStatus. Must be used after Middleware.
func RequireAdmin(rejectStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			if id == nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if !id.IsAdmin() {
				writeError(w, rejectStatus, ErrUnauthorized.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
