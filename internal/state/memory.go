package state

import (
	"context"
	"sync"
)

// MemoryStore keeps state in process memory. Used by tests and by the memory
// backend; nothing survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Load(_ context.Context) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || s.state.Token == "" {
		return nil, ErrNotFound
	}
	copied := *s.state
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := st
	s.state = &copied
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
