// Package guard gates navigation to protected views.
package guard

import (
	"finboard/internal/log"
)

// State is the outcome of one navigation evaluation. Loading lasts until the
// initial session restore completes; the other two are terminal per attempt
// and re-evaluated on the next navigation.
type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionSource is what the guard needs from the session store.
type SessionSource interface {
	IsAuthenticated() bool
	Restored() bool
}

// Decision tells the shell what to do with a navigation attempt. Redirect is
// non-empty only for Unauthenticated; the originally requested destination is
// discarded (no return-to deep link).
type Decision struct {
	State    State
	Redirect string
}

// LoginPath is where rejected navigations land.
const LoginPath = "/login"

type Guard struct {
	sessions SessionSource
	logger   *log.Logger
}

func New(sessions SessionSource, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Guard{
		sessions: sessions,
		logger:   logger.WithComponent(log.ComponentGuard),
	}
}

// Evaluate decides whether a protected view is reachable right now.
//
// While the session restore is still in progress the caller renders a
// neutral placeholder and performs no redirect; redirecting before
// restoration completes would bounce a returning user through the login view
// for no reason.
func (g *Guard) Evaluate(path string) Decision {
	if !g.sessions.Restored() {
		return Decision{State: Loading}
	}
	if g.sessions.IsAuthenticated() {
		return Decision{State: Authenticated}
	}
	g.logger.Debug("Redirecting unauthenticated navigation",
		log.FieldPath, path, log.FieldOperation, log.OpNavigate)
	return Decision{State: Unauthenticated, Redirect: LoginPath}
}
