// ABOUTME: Authenticated identity carried through request handlers
// ABOUTME: Provides WithIdentity/FromContext for propagation via context

package auth

import (
	"context"

	"github.com/stashbox/stashd/internal/store"
)

// Identity holds the authenticated user resolved from a bearer token.
// It is populated by the middleware and retrieved from context in handlers.
// The user id in here is the only owner id the rest of the system trusts.
type Identity struct {
	User *store.User
}

// IsAdmin reports whether the identity may perform user-management
// mutations.
func (i *Identity) IsAdmin() bool {
	return i.User.Role.IsAdmin()
}

// identityKey is the key type for storing Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the Identity from the context, returning nil if not
// present.
func FromContext(ctx context.Context) *Identity {
	val := ctx.Value(identityKey{})
	if val == nil {
		return nil
	}
	id, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return id
}

// MustFromContext retrieves the Identity from the context, panicking if not
// present. Use only behind the auth middleware.
func MustFromContext(ctx context.Context) *Identity {
	id := FromContext(ctx)
	if id == nil {
		panic("auth: Identity not found in context")
	}
	return id
}
