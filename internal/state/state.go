// Package state persists the two items of client state the dashboard keeps
// between runs: the credential token and the serialized identity record. They
// are stored under fixed names and always written or removed together.
package state

import (
	"context"
	"errors"

	"finboard/internal/core"
)

// Fixed storage names, matching what the rest of the system expects.
const (
	KeyToken    = "token"
	KeyIdentity = "user"
)

// ErrNotFound is returned by Load when no state has been persisted.
var ErrNotFound = errors.New("no persisted state")

// State is the persisted pair. Identity carries no token (the Token field of
// core.Session is excluded from serialization); the two halves only make
// sense together, which is why Store never exposes them separately.
type State struct {
	Token    string
	Identity core.Session
}

// Store is the port for persisted client state. Save and Clear are atomic
// with respect to the token/identity pair: a reader never observes one
// without the other.
type Store interface {
	// Load returns the persisted state, or ErrNotFound when either half is
	// missing.
	Load(ctx context.Context) (*State, error)

	// Save persists token and identity as a single logical unit.
	Save(ctx context.Context, s State) error

	// Clear removes both items.
	Clear(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
