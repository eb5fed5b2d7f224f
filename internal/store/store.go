// ABOUTME: Store types and sentinel errors for stashd persistence
// ABOUTME: Defines User and Entry records plus the Roles enumeration

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist within the
// caller's scope.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when creating a user whose username is
// already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateKey is returned when creating an entry whose key already
// exists in the owner's namespace.
var ErrDuplicateKey = errors.New("key already exists for this user")

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// IsAdmin reports whether the role grants user-management rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is an identity record. The token is minted once at creation and is
// the sole credential for all authenticated calls.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Role           Role
	Token          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Entry is a key-value record owned by exactly one user. Keys are unique
// only within the owning user's namespace.
type Entry struct {
	ID        int64
	Key       string
	Value     string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore defines user record persistence. Implementations assign ids
// atomically; callers never compute them.
type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPassword string, role Role, token string) (*User, error)
	GetUserByToken(ctx context.Context, token string) (*User, error)
	DeleteUser(ctx context.Context, username string) (*User, error)
	AdminExists(ctx context.Context) (bool, error)
}

// EntryStore defines key-value persistence. Every operation takes the owning
// user id as an explicit scope; no operation can cross it.
type EntryStore interface {
	CreateEntry(ctx context.Context, userID int64, key, value string) (*Entry, error)
	GetEntry(ctx context.Context, userID int64, key string) (*Entry, error)
	UpdateEntry(ctx context.Context, userID int64, key, value string) (*Entry, error)
	DeleteEntry(ctx context.Context, userID int64, key string) (*Entry, error)
}

// Store combines all persistence interfaces.
type Store interface {
	UserStore
	EntryStore

	// Close releases any resources held by the store
	Close() error
}
