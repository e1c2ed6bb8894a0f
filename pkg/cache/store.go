package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss indicates the requested fingerprint was not found.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the stored entry is corrupted.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is the backing key-value store for cache entries.
// Implementations own their eviction policy; callers only provide the
// desired TTL through the entry's Expires field.
type Store interface {
	// Get retrieves an entry by fingerprint.
	// Returns ErrCacheMiss if absent or expired.
	Get(ctx context.Context, fingerprint string) (*Entry, error)

	// Set stores an entry under a fingerprint until it expires.
	// Entries that are already expired are not stored.
	Set(ctx context.Context, fingerprint string, entry *Entry) error

	// Delete removes an entry.
	Delete(ctx context.Context, fingerprint string) error

	// Backend names the store implementation for logs and metrics.
	Backend() string
}
