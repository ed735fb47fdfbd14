// Package memory provides an in-memory media store implementation,
// used in tests and for throwaway development servers.
package memory

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/signcast/signcast/pkg/media"
)

// Store is an in-memory implementation of media.Store.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	closed  bool
}

// New creates a new in-memory media store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
	}
}

// Put stores an object in memory.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, media.ErrStoreClosed
	}

	s.objects[key] = data
	return int64(len(data)), nil
}

// Get returns a reader over a stored object.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, media.ErrStoreClosed
	}

	data, ok := s.objects[key]
	if !ok {
		return nil, media.ErrMediaNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes an object. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return media.ErrStoreClosed
	}

	delete(s.objects, key)
	return nil
}

// DeleteByPrefix removes every object whose key starts with prefix.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return media.ErrStoreClosed
	}

	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

// HealthCheck reports whether the store is usable.
func (s *Store) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return media.ErrStoreClosed
	}
	return nil
}

// Close marks the store as closed and drops all objects.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.objects = nil
	return nil
}

// Len returns the number of stored objects (for testing).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}

// Ensure Store implements media.Store.
var _ media.Store = (*Store)(nil)
