package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Content types of the rendered images.
const (
	ContentTypeSVG = "image/svg+xml"
	ContentTypePNG = "image/png"
)

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return qrcode.Low
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Encode produces the QR module matrix for text, without a quiet zone.
// The border is applied by the renderers so that its width stays
// configurable.
func Encode(text string, p Params) ([][]bool, error) {
	var (
		code *qrcode.QRCode
		err  error
	)
	if p.Version > 0 {
		code, err = qrcode.NewWithForcedVersion(text, p.Version, p.Level.recovery())
	} else {
		code, err = qrcode.New(text, p.Level.recovery())
	}
	if err != nil {
		return nil, fmt.Errorf("encode qr matrix: %w", err)
	}
	code.DisableBorder = true
	return code.Bitmap(), nil
}

// Render encodes text and renders it in the requested format.
// It returns the image bytes and their content type. Rendering is a pure
// function of (text, params): identical inputs yield identical bytes.
func Render(text string, p Params) ([]byte, string, error) {
	matrix, err := Encode(text, p)
	if err != nil {
		return nil, "", err
	}
	switch p.Format {
	case FormatPNG:
		data, err := renderPNG(matrix, p)
		return data, ContentTypePNG, err
	default:
		return renderSVG(matrix, p, true), ContentTypeSVG, nil
	}
}

// renderPNG rasterizes the matrix at ModuleSize pixels per module with a
// Border-wide quiet zone.
func renderPNG(matrix [][]bool, p Params) ([]byte, error) {
	modules := len(matrix)
	total := (modules + 2*p.Border) * p.ModuleSize

	img := image.NewPaletted(
		image.Rect(0, 0, total, total),
		color.Palette{color.White, color.Black},
	)
	// Palette index 0 (white) is the zero value, only dark modules need
	// to be painted.
	for y, row := range matrix {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + p.Border) * p.ModuleSize
			y0 := (y + p.Border) * p.ModuleSize
			for dy := 0; dy < p.ModuleSize; dy++ {
				for dx := 0; dx < p.ModuleSize; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSVG emits the matrix as an SVG document holding a single path.
// One user unit equals one module; the physical size derives from
// ModuleSize in tenths of a millimeter. With xmlDecl false the document
// is suitable for inline embedding in HTML.
func renderSVG(matrix [][]bool, p Params, xmlDecl bool) []byte {
	modules := len(matrix)
	total := modules + 2*p.Border
	// ModuleSize unit is 0.1 mm, so 10 units per millimeter.
	sizeMM := float64(total*p.ModuleSize) / 10

	var b strings.Builder
	if xmlDecl {
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%gmm" height="%gmm" viewBox="0 0 %d %d">`,
		sizeMM, sizeMM, total, total)
	b.WriteString(`<path d="`)
	for y, row := range matrix {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&b, "M%d %dh1v1h-1z", x+p.Border, y+p.Border)
			}
		}
	}
	b.WriteString(`" fill="#000"/></svg>`)
	return []byte(b.String())
}
