// ABOUTME: User directory service handling creation, token resolution, and deletion
// ABOUTME: Mints random bearer tokens and enforces the admin bootstrap rule

package directory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/stashbox/stashd/internal/hash"
	"github.com/stashbox/stashd/internal/store"
)

// tokenBytes is the entropy of a minted bearer token.
const tokenBytes = 32

// Directory owns user records. All user mutations in the system go through
// it; the store is never written directly by handlers.
type Directory struct {
	users  store.UserStore
	hasher *hash.Hasher
	logger *slog.Logger
}

// New creates a Directory over the given user store and hasher.
func New(users store.UserStore, hasher *hash.Hasher) *Directory {
	return &Directory{
		users:  users,
		hasher: hasher,
		logger: slog.Default().With("component", "directory"),
	}
}

// Create adds a new user with the given role and credentials. The password
// is stored as a deterministic digest; the bearer token is random, minted
// here, and disclosed to the caller only through the returned record.
// Returns store.ErrDuplicateUsername if the username is taken.
func (d *Directory) Create(ctx context.Context, role store.Role, username, password string) (*store.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	if password == "" {
		return nil, fmt.Errorf("password required")
	}

	token, err := mintToken()
	if err != nil {
		return nil, fmt.Errorf("minting token: %w", err)
	}

	user, err := d.users.CreateUser(ctx, username, d.hasher.Digest(password), role, token)
	if err != nil {
		return nil, err
	}

	d.logger.Info("created user", "id", user.ID, "username", username, "role", role)
	return user, nil
}

// ResolveByToken returns the user holding the given token, or
// store.ErrNotFound.
func (d *Directory) ResolveByToken(ctx context.Context, token string) (*store.User, error) {
	return d.users.GetUserByToken(ctx, token)
}

// Delete removes a user by username and returns the deleted record, or
// store.ErrNotFound.
func (d *Directory) Delete(ctx context.Context, username string) (*store.User, error) {
	user, err := d.users.DeleteUser(ctx, username)
	if err != nil {
		return nil, err
	}

	d.logger.Info("deleted user", "id", user.ID, "username", username)
	return user, nil
}

// ExistsAdmin reports whether any admin user exists.
func (d *Directory) ExistsAdmin(ctx context.Context) (bool, error) {
	return d.users.AdminExists(ctx)
}

// Bootstrap ensures an admin user exists, creating one from the given
// credentials if the directory has none. Runs once at process start before
// any traffic is served; a failure here must abort startup.
//
// Returns the created admin when one was minted, nil when an admin already
// existed. Tokens are random, so creation is the caller's only chance to
// disclose the bootstrap token to the operator.
func (d *Directory) Bootstrap(ctx context.Context, username, password string) (*store.User, error) {
	exists, err := d.ExistsAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking for admin: %w", err)
	}
	if exists {
		d.logger.Info("admin user exists")
		return nil, nil
	}

	admin, err := d.Create(ctx, store.RoleAdmin, username, password)
	if err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}

	d.logger.Info("created bootstrap admin", "username", username)
	return admin, nil
}

// mintToken generates a random opaque bearer token. Tokens carry no
// structure; they are only ever compared against the stored column.
func mintToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
