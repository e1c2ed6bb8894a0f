// Package testutil provides testing utilities for the QR image service.
package testutil

import (
	"context"
	"sync"

	"github.com/qrserve/qrserve/pkg/cache"
)

// RecordingStore is an in-memory cache.Store that counts operations and
// can be made to fail on demand, for exercising the degrade-to-render
// paths.
type RecordingStore struct {
	mu      sync.Mutex
	entries map[string]*cache.Entry

	// GetErr and SetErr, when set, are returned by the corresponding
	// operations instead of touching the map.
	GetErr error
	SetErr error

	// Operation counters.
	GetCalls int
	SetCalls int
}

// NewRecordingStore creates an empty recording store.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{entries: make(map[string]*cache.Entry)}
}

// Backend implements cache.Store.
func (s *RecordingStore) Backend() string { return "recording" }

// Get implements cache.Store.
func (s *RecordingStore) Get(_ context.Context, fingerprint string) (*cache.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	entry, ok := s.entries[fingerprint]
	if !ok || entry.IsExpired() {
		return nil, cache.ErrCacheMiss
	}
	return entry, nil
}

// Set implements cache.Store.
func (s *RecordingStore) Set(_ context.Context, fingerprint string, entry *cache.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.entries[fingerprint] = entry
	return nil
}

// Delete implements cache.Store.
func (s *RecordingStore) Delete(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, fingerprint)
	return nil
}

// Len returns the number of stored entries.
func (s *RecordingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
