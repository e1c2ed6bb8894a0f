package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/qrserve/qrserve/pkg/qr"
)

// Key identifies a rendered QR image by every parameter that affects the
// output bytes.
type Key struct {
	// Text is the raw payload encoded in the QR code.
	Text string

	// ModuleSize is the resolved module size.
	ModuleSize int

	// Version is the QR version (0 for automatic).
	Version int

	// Border is the quiet zone width in modules.
	Border int

	// Level is the error correction level.
	Level qr.Level

	// Format is the image format.
	Format qr.Format
}

// NewKey builds a Key for text rendered with the given parameters.
func NewKey(text string, p qr.Params) Key {
	return Key{
		Text:       text,
		ModuleSize: p.ModuleSize,
		Version:    p.Version,
		Border:     p.Border,
		Level:      p.Level,
		Format:     p.Format,
	}
}

// String generates a deterministic, unambiguous serialization of the key.
// The text length is included so that no two distinct keys can serialize
// to the same string.
//
// Format: qr:format:level:version=N:size=N:border=N:len=N:text
func (k Key) String() string {
	return fmt.Sprintf("qr:%s:%s:version=%d:size=%d:border=%d:len=%d:%s",
		k.Format, k.Level, k.Version, k.ModuleSize, k.Border, len(k.Text), k.Text)
}

// Fingerprint returns the cache key as a hex-encoded SHA-256 digest of
// the canonical serialization.
func (k Key) Fingerprint() string {
	sum := sha256.Sum256([]byte(k.String()))
	return hex.EncodeToString(sum[:])
}
