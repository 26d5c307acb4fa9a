package controller

import (
	"context"
	"sync"
)

// listState is the shared core under every feature controller. It holds the
// items a view renders plus a monotonically increasing load ticket. A reload
// claims a ticket before dispatching and commits its result only while it
// still holds the newest ticket, so when loads overlap the last one started
// wins regardless of response order.
type listState[T any] struct {
	mu      sync.Mutex
	seq     uint64
	items   []T
	lastErr string
	loading bool
}

// begin claims a load ticket and marks the list as loading. Any earlier
// in-flight load is implicitly superseded.
func (s *listState[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	return s.seq
}

// complete commits a load result. A stale ticket is discarded without
// touching the list. On error the previous items stay visible and only the
// error message changes.
func (s *listState[T]) complete(ticket uint64, items []T, err error, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		return false
	}
	s.loading = false
	if err != nil {
		s.lastErr = errMsg
		return true
	}
	s.items = items
	s.lastErr = ""
	return true
}

// abandon releases a ticket without committing anything. Used when the
// view's context is cancelled mid-request.
func (s *listState[T]) abandon(ticket uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket == s.seq {
		s.loading = false
	}
}

// setError surfaces a mutation failure without disturbing the list.
func (s *listState[T]) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *listState[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *listState[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *listState[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// discard reports whether a load result should be thrown away because the
// view that requested it is gone.
func discard(ctx context.Context) bool {
	return ctx.Err() != nil
}
