package imageserver

import (
	"errors"
	"strings"
	"testing"
)

func TestSigner_RoundTrip(t *testing.T) {
	signer := NewSigner("secret-key")

	signed := signer.Sign("some.value")
	value, err := signer.Unsign(signed)
	if err != nil {
		t.Fatalf("Unsign failed: %v", err)
	}
	if value != "some.value" {
		t.Errorf("Unsign = %q, want %q", value, "some.value")
	}
}

func TestSigner_RejectsTampering(t *testing.T) {
	signer := NewSigner("secret-key")
	signed := signer.Sign("some.value")

	flipped := byte('A')
	if signed[len(signed)-1] == flipped {
		flipped = 'B'
	}

	tests := []struct {
		name   string
		signed string
	}{
		{"altered value", strings.Replace(signed, "some", "evil", 1)},
		{"altered signature", signed[:len(signed)-1] + string(flipped)},
		{"no separator", "plainvalue"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := signer.Unsign(tt.signed); !errors.Is(err, ErrBadSignature) {
				t.Errorf("Unsign = %v, want ErrBadSignature", err)
			}
		})
	}
}

func TestSigner_RejectsForeignKey(t *testing.T) {
	signed := NewSigner("key-one").Sign("value")

	if _, err := NewSigner("key-two").Unsign(signed); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Unsign with wrong key = %v, want ErrBadSignature", err)
	}
}

func TestVerifyToken(t *testing.T) {
	urlSigner := NewURLSigner("secret-key", DefaultImagePath)
	signer := urlSigner.Signer()
	params := testParams()

	token := urlSigner.Token(params)
	if err := signer.VerifyToken(token, params); err != nil {
		t.Fatalf("VerifyToken failed for matching params: %v", err)
	}

	// A token minted for one set of parameters must not authorize
	// another (e.g. requesting a bigger image).
	bigger := params
	bigger.ModuleSize = 48
	if err := signer.VerifyToken(token, bigger); !errors.Is(err, ErrTokenMismatch) {
		t.Errorf("VerifyToken with different params = %v, want ErrTokenMismatch", err)
	}

	if err := signer.VerifyToken("", params); !errors.Is(err, ErrBadSignature) {
		t.Errorf("VerifyToken with empty token = %v, want ErrBadSignature", err)
	}
}

func TestURLSigner_ImageURL(t *testing.T) {
	urlSigner := NewURLSigner("secret-key", DefaultImagePath)
	u := urlSigner.ImageURL("hello world", testParams(), true)

	if !strings.HasPrefix(u, DefaultImagePath+"?") {
		t.Errorf("ImageURL = %q, want prefix %q", u, DefaultImagePath+"?")
	}
	for _, param := range []string{"text=", "size=2", "border=4", "version=0",
		"image_format=svg", "error_correction=M", "token="} {
		if !strings.Contains(u, param) {
			t.Errorf("ImageURL missing %q: %s", param, u)
		}
	}
	if strings.Contains(u, "cache_enabled") {
		t.Error("cache_enabled should be omitted when caching is on")
	}

	uncached := urlSigner.ImageURL("hello world", testParams(), false)
	if !strings.Contains(uncached, "cache_enabled=false") {
		t.Errorf("ImageURL without caching should carry cache_enabled=false: %s", uncached)
	}
}

func TestURLSigner_StableWithinProcess(t *testing.T) {
	urlSigner := NewURLSigner("secret-key", DefaultImagePath)

	first := urlSigner.ImageURL("same", testParams(), true)
	second := urlSigner.ImageURL("same", testParams(), true)
	if first != second {
		t.Error("identical inputs should produce identical URLs within a process")
	}
}
