package session

import (
	"context"
	"testing"

	"finboard/internal/core"
	"finboard/internal/state"
)

func newTestStore() (*Store, *state.MemoryStore) {
	persist := state.NewMemoryStore()
	return NewStore(persist, nil), persist
}

func validSession() core.Session {
	return core.Session{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@b.com",
		Token:     "jwt-token",
	}
}

func TestStoreSetAndCurrent(t *testing.T) {
	ctx := context.Background()
	store, persist := newTestStore()

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	current := store.Current()
	if current == nil || current.ID != 1 || current.FirstName != "Ada" {
		t.Fatalf("Current = %+v", current)
	}
	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated should be true after Set")
	}

	// Persisted storage must hold the matching token/identity pair.
	persisted, err := persist.Load(ctx)
	if err != nil {
		t.Fatalf("persist.Load: %v", err)
	}
	if persisted.Token != "jwt-token" || persisted.Identity.Email != "a@b.com" {
		t.Errorf("persisted = %+v", persisted)
	}
}

// isAuthenticated must equal "both token and identity present" for every
// sequence of Set/Clear; one half alone is rejected at the boundary.
func TestStoreSessionAtomicity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	tokenOnly := core.Session{Token: "tok"}
	if err := store.Set(ctx, tokenOnly); err == nil {
		t.Error("Set with token but no identity should fail")
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated true after rejected Set")
	}

	identityOnly := core.Session{ID: 1, Email: "a@b.com"}
	if err := store.Set(ctx, identityOnly); err == nil {
		t.Error("Set with identity but no token should fail")
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated true after rejected Set")
	}

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("valid Set: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated false after valid Set")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated true after Clear")
	}
	if store.Current() != nil {
		t.Error("Current not nil after Clear")
	}
}

func TestStoreRestoreIdempotent(t *testing.T) {
	ctx := context.Background()
	persist := state.NewMemoryStore()
	if err := persist.Save(ctx, state.State{
		Token:    "persisted-token",
		Identity: core.Session{ID: 3, FirstName: "Grace", Email: "g@h.com"},
	}); err != nil {
		t.Fatalf("seed persist: %v", err)
	}

	store := NewStore(persist, nil)

	if store.Restored() {
		t.Error("Restored true before Restore")
	}

	if err := store.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	first := store.Current()
	if first == nil || first.Token != "persisted-token" || first.ID != 3 {
		t.Fatalf("restored session = %+v", first)
	}
	if !store.Restored() {
		t.Error("Restored false after Restore")
	}

	if err := store.Restore(ctx); err != nil {
		t.Fatalf("second Restore: %v", err)
	}
	second := store.Current()
	if *second != *first {
		t.Errorf("second Restore = %+v, want %+v", second, first)
	}
}

func TestStoreRestoreEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	if err := store.Restore(ctx); err != nil {
		t.Fatalf("Restore on empty state: %v", err)
	}
	if store.Current() != nil {
		t.Error("Current should be nil with no persisted state")
	}
	if !store.Restored() {
		t.Error("Restored should be true even with no persisted state")
	}
}

func TestStoreClearRemovesPersistedState(t *testing.T) {
	ctx := context.Background()
	store, persist := newTestStore()

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := persist.Load(ctx); !state.IsNotFound(err) {
		t.Errorf("persisted state after Clear = %v, want ErrNotFound", err)
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestStoreSubscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	var seen []*core.Session
	store.Subscribe(func(s *core.Session) {
		seen = append(seen, s)
	})

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("subscriber called %d times, want 2", len(seen))
	}
	if seen[0] == nil || seen[0].ID != 1 {
		t.Errorf("first notification = %+v", seen[0])
	}
	if seen[1] != nil {
		t.Errorf("second notification = %+v, want nil", seen[1])
	}
}

func TestStoreTokenSnapshot(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	if tok := store.Token(); tok != "" {
		t.Errorf("Token before login = %q", tok)
	}

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	captured := store.Token()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	// The captured value is unaffected by the later logout; an in-flight
	// request keeps one consistent token for its lifetime.
	if captured != "jwt-token" {
		t.Errorf("captured token = %q", captured)
	}
	if tok := store.Token(); tok != "" {
		t.Errorf("Token after Clear = %q", tok)
	}
}

func TestStoreAuthExpired(t *testing.T) {
	ctx := context.Background()
	store, persist := newTestStore()

	if err := store.Set(ctx, validSession()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store.AuthExpired(ctx)

	if store.IsAuthenticated() {
		t.Error("still authenticated after AuthExpired")
	}
	if _, err := persist.Load(ctx); !state.IsNotFound(err) {
		t.Error("persisted state survived AuthExpired")
	}
}
