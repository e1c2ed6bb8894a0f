// Package cache provides the shared image cache with Redis or in-memory
// backend and strong validators for conditional requests.
//
// Rendered images are stored under a fingerprint derived from every
// parameter that affects the output. Two requests with identical
// effective parameters map to the same key; any differing parameter
// produces a different key with overwhelming probability (SHA-256 over an
// unambiguous serialization).
//
// # Basic Usage
//
//	// Create a store (Redis for shared deployments, memory otherwise)
//	store := cache.NewRedisStore(redisClient, "qrserve")
//
//	// Create the cache manager
//	manager := cache.NewManager(store)
//
//	// Build a key from the request parameters
//	key := cache.NewKey("hello world", params)
//
//	// Look up
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// render, then manager.Set(ctx, key, entry)
//	}
//
// # Degradation
//
// Store failures never propagate as fatal errors. A failing Get is
// reported as a cache miss so the caller falls back to rendering, and a
// failing Set leaves the response path intact. Both are counted in the
// qr_cache_errors_total metric and logged.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - qr_cache_hits_total{backend} - cache hits
//   - qr_cache_misses_total - cache misses
//   - qr_cache_errors_total{operation} - store operation errors
//   - qr_cache_size_bytes{backend} - bytes written to the cache
package cache
