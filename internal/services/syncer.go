package services

import (
	"context"
	"sync"
)

// ListSyncer holds the last-fetched copy of one resource list and applies
// local deltas after successful mutations. The held slice is always the
// snapshot of a single server response, never a merge of two fetches.
// Update and delete replace or remove in place without reordering; create
// goes through ApplyCreate, which re-fetches the whole list because
// server-derived fields (generated tag ids, populated file references) are
// unknown client-side until read back. That trades an extra round trip for
// consistency, deliberately.
//
// Each list view owns its own ListSyncer instance, so a response arriving
// after the view is gone lands in a discarded syncer and is naturally inert.
type ListSyncer[T any] struct {
	fetch func(context.Context) ([]T, error)
	id    func(T) int

	mu          sync.RWMutex
	items       []T
	lastErr     error
	subscribers []func()
}

// NewListSyncer builds a syncer over fetch, using id to extract each
// element's identifier.
func NewListSyncer[T any](fetch func(context.Context) ([]T, error), id func(T) int) *ListSyncer[T] {
	return &ListSyncer[T]{fetch: fetch, id: id}
}

// Items returns a copy of the current snapshot. Handing out a copy keeps
// callers that index into it after the call safe from in-place writes
// applied on another goroutine.
func (s *ListSyncer[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Err returns the error recorded by the last failed Load, or nil.
func (s *ListSyncer[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers fn to run after every change to the snapshot.
func (s *ListSyncer[T]) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *ListSyncer[T]) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// Load replaces the held list wholesale with a fresh fetch and clears any
// recorded error. On failure the previous list stays untouched (and
// visible) and the error is recorded for display.
func (s *ListSyncer[T]) Load(ctx context.Context) error {
	items, err := s.fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.mu.Lock()
	s.items = items
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// ApplyCreate folds a successful create into the list by re-running Load.
func (s *ListSyncer[T]) ApplyCreate(ctx context.Context) error {
	return s.Load(ctx)
}

// ApplyUpdate replaces the element with the given id, keeping every other
// element in its position. Unknown ids are ignored.
func (s *ListSyncer[T]) ApplyUpdate(id int, item T) {
	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = item
			replaced = true
			break
		}
	}
	s.mu.Unlock()
	if replaced {
		s.notify()
	}
}

// ApplyDelete removes the element with the given id, preserving the order
// of the rest. Unknown ids are ignored.
func (s *ListSyncer[T]) ApplyDelete(id int) {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}
