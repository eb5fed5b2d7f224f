// ABOUTME: User record persistence for the SQLite store
// ABOUTME: Ids are assigned by AUTOINCREMENT; tokens and usernames are UNIQUE

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateUser inserts a new user and returns the stored record, including the
// id assigned by the database. Returns ErrDuplicateUsername if the username
// is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, hashedPassword string, role Role, token string) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	// Truncate to seconds so the returned record matches what RFC3339
	// round-trips through the database.
	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO users (username, hashed_password, role, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           role,
		Token:          token,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.QueryRowContext(ctx, query,
		username,
		hashedPassword,
		string(role),
		token,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	).Scan(&user.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Debug("created user", "id", user.ID, "username", username, "role", role)
	return user, nil
}

// GetUserByToken retrieves the user holding the given token.
// Exact match only; returns ErrNotFound if no user holds it.
func (s *SQLiteStore) GetUserByToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT id, username, hashed_password, role, token, created_at, updated_at
		FROM users
		WHERE token = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, token))
}

// DeleteUser removes a user by username and returns the deleted record.
// Returns ErrNotFound if no such user exists. Entries owned by the user are
// removed by the schema's cascade.
func (s *SQLiteStore) DeleteUser(ctx context.Context, username string) (*User, error) {
	query := `
		DELETE FROM users
		WHERE username = ?
		RETURNING id, username, hashed_password, role, token, created_at, updated_at
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("deleted user", "id", user.ID, "username", username)
	return user, nil
}

// AdminExists reports whether at least one user holds the admin role.
func (s *SQLiteStore) AdminExists(ctx context.Context) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, string(RoleAdmin)).Scan(&count); err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}

	return count > 0, nil
}

// scanUser scans a full user row, translating sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	var role string
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&role,
		&user.Token,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.Role = Role(role)
	user.CreatedAt, user.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
