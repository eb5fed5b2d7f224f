// ABOUTME: Tests for key-value entry persistence
// ABOUTME: Covers CRUD, per-user namespaces, and owner scoping

package store

import (
	"context"
	"errors"
	"testing"
)

// newTestUser creates a user for entry tests.
func newTestUser(t *testing.T, s *SQLiteStore, username string) *User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), username, "pw", RoleUser, "token-"+username)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestCreateAndGetEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, s, "alice")

	created, err := s.CreateEntry(ctx, user.ID, "color", "teal")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected database-assigned id, got 0")
	}
	if created.UserID != user.ID {
		t.Errorf("expected owner %d, got %d", user.ID, created.UserID)
	}

	got, err := s.GetEntry(ctx, user.ID, "color")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Value != "teal" {
		t.Errorf("expected value 'teal', got %q", got.Value)
	}
	if got.ID != created.ID {
		t.Errorf("expected id %d, got %d", created.ID, got.ID)
	}
}

func TestCreateEntry_DuplicateKeySameOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, s, "alice")

	if _, err := s.CreateEntry(ctx, user.ID, "color", "teal"); err != nil {
		t.Fatalf("first CreateEntry failed: %v", err)
	}

	_, err := s.CreateEntry(ctx, user.ID, "color", "mauve")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCreateEntry_SameKeyDifferentOwners(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.CreateEntry(ctx, alice.ID, "color", "teal"); err != nil {
		t.Fatalf("CreateEntry for alice failed: %v", err)
	}
	if _, err := s.CreateEntry(ctx, bob.ID, "color", "mauve"); err != nil {
		t.Fatalf("CreateEntry for bob failed: %v", err)
	}

	got, err := s.GetEntry(ctx, bob.ID, "color")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Value != "mauve" {
		t.Errorf("expected bob's value 'mauve', got %q", got.Value)
	}
}

func TestGetEntry_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.CreateEntry(ctx, alice.ID, "secret", "v"); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	// Bob cannot read alice's entry even with the identical key string
	if _, err := s.GetEntry(ctx, bob.ID, "secret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, s, "alice")

	created, err := s.CreateEntry(ctx, user.ID, "color", "teal")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	updated, err := s.UpdateEntry(ctx, user.ID, "color", "mauve")
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Value != "mauve" {
		t.Errorf("expected value 'mauve', got %q", updated.Value)
	}
	if updated.ID != created.ID {
		t.Errorf("expected same row id %d, got %d", created.ID, updated.ID)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected created_at preserved, got %v want %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, s, "alice")

	// No upsert: updating an absent key fails and creates nothing
	if _, err := s.UpdateEntry(ctx, user.ID, "missing", "v"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetEntry(ctx, user.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Error("update of absent key must not create a row")
	}
}

func TestUpdateEntry_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.CreateEntry(ctx, alice.ID, "color", "teal"); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if _, err := s.UpdateEntry(ctx, bob.ID, "color", "mauve"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}

	// Alice's value is untouched
	got, err := s.GetEntry(ctx, alice.ID, "color")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Value != "teal" {
		t.Errorf("expected alice's value unchanged, got %q", got.Value)
	}
}

func TestDeleteEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := newTestUser(t, s, "alice")

	created, err := s.CreateEntry(ctx, user.ID, "color", "teal")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	deleted, err := s.DeleteEntry(ctx, user.ID, "color")
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("expected deleted id %d, got %d", created.ID, deleted.ID)
	}
	if deleted.Value != "teal" {
		t.Errorf("expected deleted value returned, got %q", deleted.Value)
	}

	// Second delete finds nothing
	if _, err := s.DeleteEntry(ctx, user.ID, "color"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteEntry_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.CreateEntry(ctx, alice.ID, "color", "teal"); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if _, err := s.DeleteEntry(ctx, bob.ID, "color"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}

	if _, err := s.GetEntry(ctx, alice.ID, "color"); err != nil {
		t.Errorf("alice's entry should survive bob's delete attempt: %v", err)
	}
}
