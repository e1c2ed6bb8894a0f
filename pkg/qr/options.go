package qr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Format is the output image format.
type Format string

const (
	// FormatSVG renders the QR code as an SVG document.
	FormatSVG Format = "svg"

	// FormatPNG renders the QR code as a PNG raster image.
	FormatPNG Format = "png"
)

// Level is the QR error correction level.
type Level string

const (
	// LevelL recovers up to 7% of damaged data.
	LevelL Level = "L"

	// LevelM recovers up to 15% of damaged data.
	LevelM Level = "M"

	// LevelQ recovers up to 25% of damaged data.
	LevelQ Level = "Q"

	// LevelH recovers up to 30% of damaged data.
	LevelH Level = "H"
)

// SizeClasses maps size class letters to module sizes.
var SizeClasses = map[string]int{
	"t": 6,
	"s": 12,
	"m": 18,
	"l": 30,
	"h": 48,
}

const (
	// DefaultSizeClass is the size class used when none is given.
	DefaultSizeClass = "m"

	// DefaultBorder is the quiet zone width in modules.
	DefaultBorder = 4

	// DefaultFormat is the image format used when none is given.
	DefaultFormat = FormatSVG

	// DefaultLevel is the error correction level used when none is given.
	DefaultLevel = LevelM
)

// Options are the raw, possibly user-supplied rendering options.
// Invalid values are coerced to defaults by Resolve.
type Options struct {
	// Size is a size class letter (t/s/m/l/h, case-insensitive) or an
	// explicit positive integer module size.
	Size string

	// Version is the QR version (1-40) or empty/"auto" for automatic.
	Version string

	// Border is the quiet zone width in modules.
	Border int

	// Format is the output image format ("svg" or "png").
	Format string

	// ErrorCorrection is the error correction level (L/M/Q/H).
	ErrorCorrection string
}

// DefaultOptions returns options with all defaults applied.
func DefaultOptions() Options {
	return Options{
		Size:            DefaultSizeClass,
		Border:          DefaultBorder,
		Format:          string(DefaultFormat),
		ErrorCorrection: string(DefaultLevel),
	}
}

// Params are fully resolved rendering parameters.
// All fields participate in the cache fingerprint.
type Params struct {
	// ModuleSize is the size of a single module (pixels for PNG,
	// tenths of a millimeter for SVG).
	ModuleSize int `validate:"gt=0"`

	// Version is the QR version, 0 for automatic.
	Version int `validate:"gte=0,lte=40"`

	// Border is the quiet zone width in modules.
	Border int `validate:"gte=0"`

	// Format is the output image format.
	Format Format `validate:"oneof=svg png"`

	// Level is the error correction level.
	Level Level `validate:"oneof=L M Q H"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Resolve normalizes the options into concrete parameters.
// Unknown size classes, non-positive explicit sizes, out-of-range versions
// and unknown formats or levels fall back to their defaults.
func (o Options) Resolve() Params {
	return Params{
		ModuleSize: resolveModuleSize(o.Size),
		Version:    resolveVersion(o.Version),
		Border:     o.Border,
		Format:     resolveFormat(o.Format),
		Level:      resolveLevel(o.ErrorCorrection),
	}
}

// Validate checks the resolved parameters against their allowed ranges.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid qr parameters: %w", err)
	}
	return nil
}

func resolveModuleSize(size string) int {
	size = strings.TrimSpace(size)
	if n, err := strconv.Atoi(size); err == nil {
		if n < 1 {
			return SizeClasses[DefaultSizeClass]
		}
		return n
	}
	if n, ok := SizeClasses[strings.ToLower(size)]; ok {
		return n
	}
	return SizeClasses[DefaultSizeClass]
}

func resolveVersion(version string) int {
	n, err := strconv.Atoi(strings.TrimSpace(version))
	if err != nil || n < 1 || n > 40 {
		return 0
	}
	return n
}

func resolveFormat(format string) Format {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return FormatPNG
	default:
		return FormatSVG
	}
}

func resolveLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return LevelL
	case "Q":
		return LevelQ
	case "H":
		return LevelH
	default:
		return LevelM
	}
}
