// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection keeps an optimistic local copy of a backend
// collection: mutations apply to the copy immediately and are confirmed or
// rolled back when the backend answers. Implements: prd013-optimistic-edit;
//
//	docs/ARCHITECTURE § Collections.
package collection

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// placeholderPrefix marks locally assigned identifiers. The backend never
// issues ids with this prefix, so a placeholder can always be told apart
// from a persisted record.
const placeholderPrefix = "local-"

// IsPlaceholder reports whether an id was assigned locally and not yet
// confirmed by the backend.
func IsPlaceholder(id string) bool {
	return len(id) > len(placeholderPrefix) && id[:len(placeholderPrefix)] == placeholderPrefix
}

type txnKind int

const (
	txnCreate txnKind = iota
	txnUpdate
	txnDelete
)

type txn[T any] struct {
	kind  txnKind
	index int // position in items at stage time
	prev  T   // prior record for update/delete
}

// Store is an optimistic working copy of one collection. All methods are
// safe for concurrent use.
type Store[T any] struct {
	id    func(T) string
	setID func(*T, string)

	mu      sync.Mutex
	items   []T
	pending map[string]txn[T]
}

// NewStore wraps a fetched collection. id extracts a record's identifier;
// setID assigns one (used for placeholders).
func NewStore[T any](items []T, id func(T) string, setID func(*T, string)) *Store[T] {
	return &Store[T]{
		id:      id,
		setID:   setID,
		items:   append([]T(nil), items...),
		pending: make(map[string]txn[T]),
	}
}

// Items returns a copy of the working collection, staged mutations
// included.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// StageCreate adds the record under a fresh placeholder id and returns
// that id. Confirm swaps in the server record; Rollback removes it.
func (s *Store[T]) StageCreate(item T) string {
	placeholder := placeholderPrefix + uuid.NewString()
	s.setID(&item, placeholder)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[placeholder] = txn[T]{kind: txnCreate, index: len(s.items)}
	s.items = append(s.items, item)
	return placeholder
}

// StageUpdate replaces the record with the given id in the working copy.
func (s *Store[T]) StageUpdate(id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[id]; exists {
		return fmt.Errorf("record %s already has a pending mutation", id)
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %s not in collection", id)
	}
	s.pending[id] = txn[T]{kind: txnUpdate, index: idx, prev: s.items[idx]}
	s.setID(&item, id)
	s.items[idx] = item
	return nil
}

// StageDelete removes the record with the given id from the working copy.
func (s *Store[T]) StageDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[id]; exists {
		return fmt.Errorf("record %s already has a pending mutation", id)
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %s not in collection", id)
	}
	s.pending[id] = txn[T]{kind: txnDelete, index: idx, prev: s.items[idx]}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// Confirm settles a staged mutation with the backend's answer. For creates,
// server carries the assigned id and replaces the placeholder record.
func (s *Store[T]) Confirm(id string, server T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, exists := s.pending[id]
	if !exists {
		return fmt.Errorf("no pending mutation for %s", id)
	}
	delete(s.pending, id)

	switch t.kind {
	case txnCreate, txnUpdate:
		idx := s.indexOf(id)
		if idx < 0 {
			return fmt.Errorf("record %s vanished from collection", id)
		}
		s.items[idx] = server
	case txnDelete:
		// already removed
	}
	return nil
}

// Rollback undoes a staged mutation, restoring the pre-stage state.
func (s *Store[T]) Rollback(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, exists := s.pending[id]
	if !exists {
		return fmt.Errorf("no pending mutation for %s", id)
	}
	delete(s.pending, id)

	switch t.kind {
	case txnCreate:
		idx := s.indexOf(id)
		if idx < 0 {
			return fmt.Errorf("record %s vanished from collection", id)
		}
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	case txnUpdate:
		idx := s.indexOf(id)
		if idx < 0 {
			return fmt.Errorf("record %s vanished from collection", id)
		}
		s.items[idx] = t.prev
	case txnDelete:
		idx := t.index
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]T{t.prev}, s.items[idx:]...)...)
	}
	return nil
}

// Pending returns the ids with unsettled mutations.
func (s *Store[T]) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.pending))
	for id := range s.pending {
		out = append(out, id)
	}
	return out
}

// indexOf scans for a record by id; callers hold s.mu.
func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if s.id(it) == id {
			return i
		}
	}
	return -1
}
