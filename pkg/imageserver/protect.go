package imageserver

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/qrserve/qrserve/pkg/qr"
)

// signingSalt namespaces the derived HMAC key so that a signing key
// shared with other subsystems cannot be used to forge image tokens.
const signingSalt = "qrserve.image-url-protection"

// DefaultTokenLength is the length of the random part of a URL token.
const DefaultTokenLength = 20

var (
	// ErrBadSignature indicates a token whose signature does not verify.
	ErrBadSignature = errors.New("bad token signature")

	// ErrTokenMismatch indicates a valid signature over a token that does
	// not match the request parameters.
	ErrTokenMismatch = errors.New("token does not match request parameters")
)

// Signer signs and verifies opaque string values with HMAC-SHA256.
type Signer struct {
	key []byte
}

// NewSigner creates a signer for the given secret key.
func NewSigner(key string) *Signer {
	derived := sha256.Sum256([]byte(signingSalt + ":" + key))
	return &Signer{key: derived[:]}
}

// Sign appends a signature to value. The result is safe for use in URLs.
func (s *Signer) Sign(value string) string {
	return value + ":" + s.signature(value)
}

// Unsign verifies a signed value and returns the original value.
func (s *Signer) Unsign(signed string) (string, error) {
	i := strings.LastIndex(signed, ":")
	if i < 0 {
		return "", ErrBadSignature
	}
	value, sig := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.signature(value))) {
		return "", ErrBadSignature
	}
	return value, nil
}

func (s *Signer) signature(value string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// protectionToken serializes the size-affecting parameters together with
// a random component. Covering the parameters in the signature means a
// token leaked from one page cannot be replayed to mint larger images.
func protectionToken(p qr.Params, random string) string {
	return fmt.Sprintf("%d.%d.%d.%s.%s.%s",
		p.ModuleSize, p.Border, p.Version, p.Level, p.Format, random)
}

// VerifyToken checks that token was signed by this signer and covers
// exactly the given parameters.
func (s *Signer) VerifyToken(token string, p qr.Params) error {
	value, err := s.Unsign(token)
	if err != nil {
		return err
	}
	i := strings.LastIndex(value, ".")
	if i < 0 {
		return ErrTokenMismatch
	}
	random := value[i+1:]
	if value != protectionToken(p, random) {
		return ErrTokenMismatch
	}
	return nil
}

// randomToken returns a URL-safe random string of length n.
func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:n]
}

// URLSigner builds image URLs carrying a signed protection token.
// The random component is fixed per process so that identical pages keep
// producing identical URLs (and therefore cacheable responses) while the
// token itself stays unpredictable.
type URLSigner struct {
	signer   *Signer
	random   string
	basePath string
}

// NewURLSigner creates a URL signer. basePath is the mount path of the
// image-serving endpoint.
func NewURLSigner(signingKey, basePath string) *URLSigner {
	return &URLSigner{
		signer:   NewSigner(signingKey),
		random:   randomToken(DefaultTokenLength),
		basePath: basePath,
	}
}

// Signer exposes the underlying signer for request verification.
func (u *URLSigner) Signer() *Signer { return u.signer }

// Token produces a signed protection token for the given parameters.
func (u *URLSigner) Token(p qr.Params) string {
	return u.signer.Sign(protectionToken(p, u.random))
}

// ImageURL builds the relative URL serving the QR image for text with
// the given parameters. The text is transported base64url-encoded. The
// plain query parameters stay alongside the token so the endpoint can
// also be used directly by callers allowed to skip protection.
func (u *URLSigner) ImageURL(text string, p qr.Params, cacheEnabled bool) string {
	q := url.Values{}
	q.Set("text", base64.URLEncoding.EncodeToString([]byte(text)))
	q.Set("size", fmt.Sprint(p.ModuleSize))
	q.Set("border", fmt.Sprint(p.Border))
	q.Set("version", fmt.Sprint(p.Version))
	q.Set("image_format", string(p.Format))
	q.Set("error_correction", string(p.Level))
	if !cacheEnabled {
		q.Set("cache_enabled", "false")
	}
	q.Set("token", u.Token(p))
	return u.basePath + "?" + q.Encode()
}
