// Package imageserver provides the image cache front end: get-or-render
// with a shared cache, conditional (ETag/304) serving, and the HTTP
// handler with signed-URL protection against external requests.
package imageserver

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/qrserve/qrserve/pkg/cache"
	"github.com/qrserve/qrserve/pkg/logging"
	"github.com/qrserve/qrserve/pkg/qr"
)

// DefaultTTL is the cache lifetime for rendered images when none is
// configured.
const DefaultTTL = 24 * time.Hour

// Renderer produces rendered QR images through the shared cache.
type Renderer struct {
	cache  *cache.Manager
	ttl    time.Duration
	group  singleflight.Group
	logger zerolog.Logger
}

// NewRenderer creates a renderer on top of a cache manager.
// A ttl of 0 uses DefaultTTL.
func NewRenderer(manager *cache.Manager, ttl time.Duration) *Renderer {
	if manager == nil {
		panic("cache manager cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Renderer{
		cache:  manager,
		ttl:    ttl,
		logger: logging.NewLogger("renderer"),
	}
}

// TTL returns the cache lifetime for rendered images.
func (r *Renderer) TTL() time.Duration { return r.ttl }

// GetOrRender returns the cached entry for (text, params), rendering and
// storing it on a miss. Rendering is a pure function of its inputs, so
// the returned bytes are identical across calls with equal parameters.
// Concurrent misses for the same fingerprint are collapsed into a single
// render; losing the race and rendering redundantly would also be
// harmless.
func (r *Renderer) GetOrRender(ctx context.Context, text string, p qr.Params) (*cache.Entry, error) {
	key := cache.NewKey(text, p)

	if entry, err := r.cache.Get(ctx, key); err == nil {
		return entry, nil
	}

	v, err, _ := r.group.Do(key.Fingerprint(), func() (interface{}, error) {
		entry, err := r.render(text, p)
		if err != nil {
			return nil, err
		}
		// Best effort: a failing store is logged by the manager and
		// must not fail the response.
		_ = r.cache.Set(ctx, key, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cache.Entry), nil
}

// Render renders an entry without touching the cache, for requests that
// explicitly opt out of caching.
func (r *Renderer) Render(text string, p qr.Params) (*cache.Entry, error) {
	return r.render(text, p)
}

func (r *Renderer) render(text string, p qr.Params) (*cache.Entry, error) {
	timer := prometheus.NewTimer(renderDuration.WithLabelValues(string(p.Format)))
	defer timer.ObserveDuration()

	data, contentType, err := qr.Render(text, p)
	if err != nil {
		r.logger.Error().Err(err).
			Str("format", string(p.Format)).
			Int("version", p.Version).
			Msg("render failed")
		return nil, err
	}
	return cache.NewEntry(data, contentType, r.ttl), nil
}
