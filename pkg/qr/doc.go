// Package qr turns request parameters into rendered QR code images.
//
// The package owns parameter normalization (size classes, version bounds,
// border, error correction, image format) and the matrix-to-image step for
// SVG and PNG output. The QR matrix encoding itself is delegated to
// github.com/skip2/go-qrcode.
//
// # Parameters
//
// The module size is either an explicit positive integer or one of the
// size class letters:
//
//	t (tiny)    6
//	s (small)  12
//	m (medium) 18
//	l (large)  30
//	h (huge)   48
//
// For PNG output the module size is in pixels, for SVG it is in tenths of
// a millimeter. The version is an integer from 1 to 40 controlling the
// matrix size (version 1 is 21x21, each version adds 4 modules per side);
// 0 selects the smallest version that fits the payload. The border is the
// quiet zone width in modules, 4 by default.
//
// Invalid size, version, format and error correction values are silently
// coerced to their defaults by Resolve. Validate is the strict layer used
// by the HTTP surface to reject out-of-range resolved parameters.
//
// # Payloads
//
// Helpers build the text payloads commonly stuffed into QR codes: mailto
// and tel URIs, geo coordinates, MeCARD contacts, WIFI network
// descriptors and a few well-known service URLs.
package qr
