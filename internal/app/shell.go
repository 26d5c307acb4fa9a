// Package app is the client shell: it owns navigation, the view lifecycle,
// and the sign-in/sign-out flows that tie the session store, route guard,
// and feature controllers together.
package app

import (
	"context"
	"fmt"
	"sync"

	"finboard/internal/api"
	"finboard/internal/core"
	"finboard/internal/guard"
	"finboard/internal/log"
)

// AuthAPI is the slice of the API client the shell itself calls.
type AuthAPI interface {
	SignIn(ctx context.Context, creds api.Credentials) (core.Session, error)
	SignUp(ctx context.Context, req api.SignUpRequest) error
}

// SessionControl is what the shell needs from the session store.
type SessionControl interface {
	Set(ctx context.Context, sess core.Session) error
	Clear(ctx context.Context) error
	Current() *core.Session
}

// MountFunc loads a view's data. The context is cancelled when the user
// navigates away, which stops any in-flight loads from touching state the
// view no longer renders.
type MountFunc func(ctx context.Context, params map[string]string) error

// Resetter is anything holding per-session state that must be dropped on
// sign-out.
type Resetter interface {
	Reset()
}

// Shell drives navigation. One view is mounted at a time; navigating
// cancels the previous view's context before the next one mounts.
type Shell struct {
	auth     AuthAPI
	sessions SessionControl
	guard    *guard.Guard
	logger   *log.Logger

	mu       sync.Mutex
	base     context.Context
	path     string
	params   map[string]string
	cancel   context.CancelFunc
	mounts   map[string]MountFunc
	resets   []Resetter
	lastSeen guard.State
}

func NewShell(auth AuthAPI, sessions SessionControl, g *guard.Guard, logger *log.Logger) *Shell {
	return &Shell{
		auth:     auth,
		sessions: sessions,
		guard:    g,
		logger:   logger.WithComponent(log.ComponentApp),
		base:     context.Background(),
		mounts:   map[string]MountFunc{},
	}
}

// SetBaseContext sets the context view mounts derive from. Cancelling it
// tears down whatever view is current.
func (s *Shell) SetBaseContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = ctx
}

// Handle registers the mount function for a route pattern. Views with no
// data to load need no handler.
func (s *Shell) Handle(pattern string, mount MountFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounts[pattern] = mount
}

// OnSignOut registers per-session state to drop when the user signs out or
// the session expires.
func (s *Shell) OnSignOut(r Resetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, r)
}

// Navigate moves to path. Protected destinations go through the guard:
// during the initial restore nothing mounts, and an unauthenticated attempt
// lands on the login view instead.
func (s *Shell) Navigate(path string) error {
	route, params, ok := matchRoute(path)
	if !ok {
		return fmt.Errorf("no route for %q", path)
	}

	if route.Protected {
		decision := s.guard.Evaluate(path)
		s.mu.Lock()
		s.lastSeen = decision.State
		s.mu.Unlock()
		switch decision.State {
		case guard.Loading:
			return nil
		case guard.Unauthenticated:
			return s.Navigate(decision.Redirect)
		}
	}

	s.mount(route, path, params)
	return nil
}

func (s *Shell) mount(route Route, path string, params map[string]string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.base)
	s.cancel = cancel
	s.path = path
	s.params = params
	mountFn := s.mounts[route.Pattern]
	s.mu.Unlock()

	s.logger.Info("navigated", log.FieldPath, path, log.FieldOperation, log.OpNavigate)

	if mountFn == nil {
		return
	}
	go func() {
		if err := mountFn(ctx, params); err != nil && ctx.Err() == nil {
			s.logger.Error("view mount failed", log.FieldPath, path, log.FieldError, err)
		}
	}()
}

// Path returns the current location.
func (s *Shell) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// GuardState returns the outcome of the last protected navigation.
func (s *Shell) GuardState() guard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SignIn authenticates, persists the session, and lands on the dashboard.
func (s *Shell) SignIn(ctx context.Context, creds api.Credentials) error {
	sess, err := s.auth.SignIn(ctx, creds)
	if err != nil {
		return err
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("signed in", log.FieldOperation, log.OpLogin)
	return s.Navigate("/dashboard")
}

// SignUp registers a new user and lands on the login view. The server does
// not issue a token on registration.
func (s *Shell) SignUp(ctx context.Context, req api.SignUpRequest) error {
	if err := s.auth.SignUp(ctx, req); err != nil {
		return err
	}
	return s.Navigate("/login")
}

// SignOut clears the session and all per-session state, then lands on the
// login view. Sign-out is local; there is no server call to invalidate the
// token.
func (s *Shell) SignOut(ctx context.Context) error {
	err := s.sessions.Clear(ctx)
	s.resetAll()
	s.logger.Info("signed out", log.FieldOperation, log.OpLogout)
	if navErr := s.Navigate(guard.LoginPath); navErr != nil {
		return navErr
	}
	return err
}

// HandleSessionExpired reacts to an auth failure surfaced by the API
// client: the session store has already been cleared, so drop per-session
// state and move to the login view.
func (s *Shell) HandleSessionExpired() {
	s.resetAll()
	if err := s.Navigate(guard.LoginPath); err != nil {
		s.logger.Error("navigate after session expiry", log.FieldError, err)
	}
}

func (s *Shell) resetAll() {
	s.mu.Lock()
	resets := make([]Resetter, len(s.resets))
	copy(resets, s.resets)
	s.mu.Unlock()
	for _, r := range resets {
		r.Reset()
	}
}
