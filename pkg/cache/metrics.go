package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_cache_hits_total",
			Help: "Total number of QR image cache hits",
		},
		[]string{"backend"}, // "redis", "memory"
	)

	// CacheMisses tracks cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_cache_misses_total",
			Help: "Total number of QR image cache misses",
		},
	)

	// CacheSize tracks bytes written to the cache by backend.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "qr_cache_size_bytes",
			Help: "Bytes written to the QR image cache",
		},
		[]string{"backend"},
	)

	// CacheErrors tracks store operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_cache_errors_total",
			Help: "Total number of cache store operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
