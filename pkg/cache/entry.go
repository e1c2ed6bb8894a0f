package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry represents a cached rendered image.
type Entry struct {
	// Data is the image bytes.
	Data []byte `json:"data"`

	// ContentType is the MIME type of Data.
	ContentType string `json:"content_type"`

	// ETag is the strong validator for conditional requests, a quoted
	// SHA-256 digest of Data.
	ETag string `json:"etag"`

	// CachedAt is when the entry was stored.
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// NewEntry builds an entry for freshly rendered image bytes.
// The validator is derived from the bytes, so re-rendering identical
// content yields the same validator.
func NewEntry(data []byte, contentType string, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Data:        data,
		ContentType: contentType,
		ETag:        Validator(data),
		CachedAt:    now,
		Expires:     now.Add(ttl),
	}
}

// Validator computes the strong ETag for image bytes.
func Validator(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration, 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
