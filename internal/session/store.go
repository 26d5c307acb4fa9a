// Package session owns the single source of truth for "who is logged in".
package session

import (
	"context"
	"fmt"
	"sync"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/state"
)

// Store holds the authenticated identity for the process lifetime. It is the
// only writer of persisted client state; everything else reads through it.
//
// Dependents (route guard, API client, navigation chrome) register with
// Subscribe and are told about every change, so session state never lives in
// ambient globals.
type Store struct {
	mu       sync.RWMutex
	current  *core.Session
	restored bool

	persist state.Store
	logger  *log.Logger

	subMu       sync.Mutex
	subscribers []func(*core.Session)
}

func NewStore(persist state.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		persist: persist,
		logger:  logger.WithComponent(log.ComponentSession),
	}
}

// Restore populates the in-memory session from persisted state at process
// start. Restoration is trust-on-read: no network call is made, and an
// expired token is only discovered on the next API call that gets rejected.
// Calling Restore again with the same persisted state yields the same
// session.
func (s *Store) Restore(ctx context.Context) error {
	st, err := s.persist.Load(ctx)

	s.mu.Lock()
	s.restored = true
	switch {
	case state.IsNotFound(err):
		s.current = nil
	case err != nil:
		// A corrupt store is treated the same as absence; staying logged out
		// is recoverable, a broken half-session is not.
		s.current = nil
		s.mu.Unlock()
		s.logger.Warn("Discarding unreadable persisted session", log.FieldError, err.Error())
		s.notify(nil)
		return fmt.Errorf("restore session: %w", err)
	default:
		restored := st.Identity
		restored.Token = st.Token
		s.current = &restored
	}
	current := s.current
	s.mu.Unlock()

	if current != nil {
		s.logger.Info("Session restored", "user_id", current.ID)
	}
	s.notify(current)
	return nil
}

// Set installs a new session after a successful login. Token and identity
// are persisted as a single unit before the in-memory session changes, so a
// crash in between can never leave one half behind.
func (s *Store) Set(ctx context.Context, sess core.Session) error {
	if sess.Token == "" || sess.ID == 0 {
		return fmt.Errorf("session missing token or identity")
	}

	if err := s.persist.Save(ctx, state.State{Token: sess.Token, Identity: sess}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.restored = true
	copied := sess
	s.current = &copied
	s.mu.Unlock()

	s.logger.Info("Session established", "user_id", sess.ID, "email", sess.Email)
	s.notify(&copied)
	return nil
}

// Clear removes the persisted pair and the in-memory session. It is called
// on explicit logout and whenever the API client observes an
// authentication-rejection, so the client can never sit in a "logged in but
// rejected" state. Safe to call when already empty.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.persist.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear persisted session", log.FieldError, err.Error())
	}

	s.mu.Lock()
	wasAuthenticated := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info("Session cleared")
	}
	s.notify(nil)
	return nil
}

// Current returns a copy of the held session, or nil when logged out.
func (s *Store) Current() *core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token returns the current bearer token, empty when logged out. A caller
// that captures the returned value uses one consistent token for the whole
// request even if login/logout happens mid-flight.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// IsAuthenticated is true iff a complete session is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated()
}

// Restored reports whether the initial restore has completed. The route
// guard renders a neutral placeholder until then.
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

// Subscribe registers fn to be called with the new session (nil on logout)
// after every change. Callbacks run synchronously on the mutating goroutine
// and must not call back into the store's mutating methods.
func (s *Store) Subscribe(fn func(*core.Session)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AuthExpired implements the API client's rejection hook.
func (s *Store) AuthExpired(ctx context.Context) {
	s.logger.Warn("Credential rejected by server, clearing session")
	_ = s.Clear(ctx)
}

func (s *Store) notify(sess *core.Session) {
	s.subMu.Lock()
	subs := make([]func(*core.Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}
