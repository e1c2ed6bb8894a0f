package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qrserve/qrserve/pkg/logging"
)

// Manager handles caching operations on top of a Store.
//
// Store failures are degraded, never fatal: a failing Get is reported as
// a cache miss so the caller renders directly, and a failing Set is
// logged and counted but does not interrupt the response path.
type Manager struct {
	store  Store
	logger zerolog.Logger
}

// NewManager creates a cache manager for the given store.
func NewManager(store Store) *Manager {
	if store == nil {
		panic("cache store cannot be nil")
	}
	return &Manager{
		store:  store,
		logger: logging.NewLogger("cache"),
	}
}

// Backend names the underlying store.
func (m *Manager) Backend() string { return m.store.Backend() }

// Get retrieves the entry for key.
// Returns ErrCacheMiss if the key is absent, expired, or the store is
// unavailable.
func (m *Manager) Get(ctx context.Context, key Key) (*Entry, error) {
	fingerprint := key.Fingerprint()

	entry, err := m.store.Get(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		// Store unavailable or entry corrupted: degrade to a miss.
		CacheErrors.WithLabelValues("get").Inc()
		m.logger.Warn().Err(err).
			Str("fingerprint", fingerprint).
			Msg("cache get failed, treating as miss")
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(m.store.Backend()).Inc()
	m.logger.Debug().
		Str("fingerprint", fingerprint).
		Str("etag", entry.ETag).
		Dur("ttl", entry.TTL()).
		Msg("cache hit")
	return entry, nil
}

// Set stores entry under key. Errors are counted and logged; callers may
// ignore the returned error since caching is best effort.
func (m *Manager) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	fingerprint := key.Fingerprint()
	if err := m.store.Set(ctx, fingerprint, entry); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		m.logger.Warn().Err(err).
			Str("fingerprint", fingerprint).
			Msg("cache set failed, serving uncached")
		return err
	}

	m.logger.Debug().
		Str("fingerprint", fingerprint).
		Int("bytes", len(entry.Data)).
		Dur("ttl", entry.TTL()).
		Msg("cache store")
	return nil
}

// Delete removes the entry for key.
func (m *Manager) Delete(ctx context.Context, key Key) error {
	if err := m.store.Delete(ctx, key.Fingerprint()); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return err
	}
	return nil
}
