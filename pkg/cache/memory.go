package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often the memory store sweeps out
// expired entries.
const DefaultCleanupInterval = 5 * time.Minute

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Expired entries are dropped lazily on Get and periodically by a
// janitor goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewMemoryStore creates an in-memory store. A cleanupInterval of 0 uses
// DefaultCleanupInterval; a negative interval disables the janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]*Entry),
		stopCleanup: make(chan struct{}),
	}
	if cleanupInterval == 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// Backend implements Store.
func (s *MemoryStore) Backend() string { return "memory" }

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[fingerprint]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.IsExpired() {
		s.mu.Lock()
		delete(s.entries, fingerprint)
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return entry, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, fingerprint string, entry *Entry) error {
	if entry == nil || entry.TTL() <= 0 {
		return nil
	}
	s.mu.Lock()
	s.entries[fingerprint] = entry
	s.mu.Unlock()

	CacheSize.WithLabelValues(s.Backend()).Add(float64(len(entry.Data)))
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	delete(s.entries, fingerprint)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor goroutine. The store stays usable.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for fingerprint, entry := range s.entries {
		if now.After(entry.Expires) {
			delete(s.entries, fingerprint)
		}
	}
}
