// ABOUTME: Key-value entry persistence for the SQLite store
// ABOUTME: Every statement filters by the owning user id; scoping lives here

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateEntry inserts a new entry in the owner's namespace and returns the
// stored record. Returns ErrDuplicateKey if the key already exists for this
// owner.
func (s *SQLiteStore) CreateEntry(ctx context.Context, userID int64, key, value string) (*Entry, error) {
	// Truncate to seconds so the returned record matches what RFC3339
	// round-trips through the database.
	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO entries (key, value, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	entry := &Entry{
		Key:       key,
		Value:     value,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.QueryRowContext(ctx, query,
		key,
		value,
		userID,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	).Scan(&entry.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	s.logger.Debug("created entry", "id", entry.ID, "user_id", userID, "key", key)
	return entry, nil
}

// GetEntry retrieves an entry by key within the owner's namespace.
// Returns ErrNotFound if the owner has no such key, even when another user
// holds an identical key string.
func (s *SQLiteStore) GetEntry(ctx context.Context, userID int64, key string) (*Entry, error) {
	query := `
		SELECT id, key, value, user_id, created_at, updated_at
		FROM entries
		WHERE user_id = ? AND key = ?
	`

	return s.scanEntry(s.db.QueryRowContext(ctx, query, userID, key))
}

// UpdateEntry sets a new value for an existing (owner, key) pair and bumps
// updated_at. Returns ErrNotFound if the pair does not exist; it never
// creates a row.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, userID int64, key, value string) (*Entry, error) {
	now := time.Now().UTC().Truncate(time.Second)
	query := `
		UPDATE entries
		SET value = ?, updated_at = ?
		WHERE user_id = ? AND key = ?
		RETURNING id, key, value, user_id, created_at, updated_at
	`

	entry, err := s.scanEntry(s.db.QueryRowContext(ctx, query, value, now.Format(time.RFC3339), userID, key))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("updated entry", "id", entry.ID, "user_id", userID, "key", key)
	return entry, nil
}

// DeleteEntry removes an entry by key within the owner's namespace and
// returns the deleted record. Returns ErrNotFound if the pair does not
// exist.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, userID int64, key string) (*Entry, error) {
	query := `
		DELETE FROM entries
		WHERE user_id = ? AND key = ?
		RETURNING id, key, value, user_id, created_at, updated_at
	`

	entry, err := s.scanEntry(s.db.QueryRowContext(ctx, query, userID, key))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("deleted entry", "id", entry.ID, "user_id", userID, "key", key)
	return entry, nil
}

// scanEntry scans a full entry row, translating sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanEntry(row *sql.Row) (*Entry, error) {
	var entry Entry
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&entry.ID,
		&entry.Key,
		&entry.Value,
		&entry.UserID,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	entry.CreatedAt, entry.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
