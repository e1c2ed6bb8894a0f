package qr

import (
	"encoding/base64"
	"fmt"
	"html"
)

// RenderHTML renders text as an HTML fragment ready for inline embedding:
// an <svg> element for SVG format, or an <img> with a base64 data URI for
// PNG format.
func RenderHTML(text string, p Params) (string, error) {
	matrix, err := Encode(text, p)
	if err != nil {
		return "", err
	}
	if p.Format == FormatPNG {
		data, err := renderPNG(matrix, p)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<img src="data:image/png;base64,%s" alt="%s">`,
			base64.StdEncoding.EncodeToString(data), html.EscapeString(text)), nil
	}
	return string(renderSVG(matrix, p, false)), nil
}
