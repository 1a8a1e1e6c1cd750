// Package memstore is a process-local reference implementation of
// store.Store, backed by a mutex-guarded map. Suitable for tests and
// the single-process demo; not durable across restarts.
package memstore

import (
	"bytes"
	"context"
	"sync"

	"github.com/justapithecus/brrr/store"
	"github.com/justapithecus/brrr/types"
)

var _ store.Store = (*Store)(nil)

// Store is an in-memory, linearizable-per-key Store.
type Store struct {
	mu       sync.Mutex
	values   map[types.Key][]byte
	counters map[types.Key]int64
}

// New creates an empty in-memory Store.
func New() *Store {
	return &Store{
		values:   make(map[types.Key][]byte),
		counters: make(map[types.Key]int64),
	}
}

func (s *Store) Has(_ context.Context, k types.Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[k]
	return ok, nil
}

func (s *Store) Get(_ context.Context, k types.Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[k]
	if !ok {
		return nil, types.ErrNotFound
	}
	return cloneBytes(v), nil
}

func (s *Store) Set(_ context.Context, k types.Key, v []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[k] = cloneBytes(v)
	return nil
}

func (s *Store) Delete(_ context.Context, k types.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, k)
	return nil
}

func (s *Store) SetNewValue(_ context.Context, k types.Key, v []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[k]; ok {
		return types.ErrCompareMismatch
	}
	s.values[k] = cloneBytes(v)
	return nil
}

func (s *Store) CompareAndSet(_ context.Context, k types.Key, newValue, expected []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.values[k]
	if !ok || !bytes.Equal(current, expected) {
		return types.ErrCompareMismatch
	}
	s.values[k] = cloneBytes(newValue)
	return nil
}

func (s *Store) CompareAndDelete(_ context.Context, k types.Key, expected []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.values[k]
	if !ok || !bytes.Equal(current, expected) {
		return types.ErrCompareMismatch
	}
	delete(s.values, k)
	return nil
}

func (s *Store) Incr(_ context.Context, k types.Key) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[k]++
	return s.counters[k], nil
}

func (s *Store) PeekCounter(_ context.Context, k types.Key) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[k], nil
}

func cloneBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
