package tag

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/qrserve/qrserve/pkg/imageserver"
	"github.com/qrserve/qrserve/pkg/qr"
)

func render(t *testing.T, text string, data interface{}) string {
	t.Helper()

	signer := imageserver.NewURLSigner("test-key", imageserver.DefaultImagePath)
	tmpl, err := template.New("page").Funcs(FuncMap(signer)).Parse(text)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("execute template: %v", err)
	}
	return buf.String()
}

func TestQRFromText_InlineSVG(t *testing.T) {
	out := render(t, `{{qr_from_text "hello" "size" "2"}}`, nil)

	if !strings.Contains(out, "<svg") {
		t.Errorf("expected inline svg, got %.60q", out)
	}
	if strings.Contains(out, "&lt;svg") {
		t.Error("fragment must not be escaped by the template engine")
	}
}

func TestQRFromText_PNGDataURI(t *testing.T) {
	out := render(t, `{{qr_from_text "hello" "size" "2" "image_format" "png"}}`, nil)

	if !strings.Contains(out, `<img src="data:image/png;base64,`) {
		t.Errorf("expected data URI img, got %.60q", out)
	}
}

func TestQRURLFromText(t *testing.T) {
	out := render(t, `<img src="{{qr_url_from_text "hello" "size" "t"}}">`, nil)

	if !strings.Contains(out, imageserver.DefaultImagePath) {
		t.Errorf("expected serving path in URL, got %q", out)
	}
	if !strings.Contains(out, "token=") {
		t.Error("URL should carry a protection token")
	}
	if !strings.Contains(out, "size=6") {
		t.Errorf("size class t should resolve to 6, got %q", out)
	}
}

func TestQRURLFromText_CacheDisabled(t *testing.T) {
	out := render(t, `{{qr_url_from_text "hello" "cache_enabled" "false"}}`, nil)

	if !strings.Contains(out, "cache_enabled=false") {
		t.Errorf("expected cache_enabled=false in URL, got %q", out)
	}
}

func TestPayloadTags(t *testing.T) {
	out := render(t, `{{qr_for_email "a@b.com" "size" "2"}}`, nil)
	if !strings.Contains(out, "<svg") {
		t.Errorf("qr_for_email should render inline, got %.60q", out)
	}

	out = render(t, `{{qr_for_wifi . "size" "2"}}`, qr.WiFi{SSID: "net", Authentication: "WPA", Password: "pw"})
	if !strings.Contains(out, "<svg") {
		t.Errorf("qr_for_wifi should render inline, got %.60q", out)
	}

	out = render(t, `{{qr_for_contact . "size" "2"}}`, qr.Contact{FirstName: "John", LastName: "Doe"})
	if !strings.Contains(out, "<svg") {
		t.Errorf("qr_for_contact should render inline, got %.60q", out)
	}
}

func TestInvalidOptions(t *testing.T) {
	signer := imageserver.NewURLSigner("test-key", imageserver.DefaultImagePath)

	tests := []struct {
		name string
		text string
	}{
		{"odd option count", `{{qr_from_text "x" "size"}}`},
		{"unknown option", `{{qr_from_text "x" "colour" "red"}}`},
		{"non-integer border", `{{qr_from_text "x" "border" "four"}}`},
		{"negative border", `{{qr_from_text "x" "border" "-2"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("page").Funcs(FuncMap(signer)).Parse(tt.text)
			if err != nil {
				t.Fatalf("parse template: %v", err)
			}
			if err := tmpl.Execute(&bytes.Buffer{}, nil); err == nil {
				t.Error("expected execution error for invalid options")
			}
		})
	}
}

func TestQRURL_RequiresSigner(t *testing.T) {
	tmpl, err := template.New("page").Funcs(FuncMap(nil)).Parse(`{{qr_url_from_text "x"}}`)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	if err := tmpl.Execute(&bytes.Buffer{}, nil); err == nil {
		t.Error("qr_url_* without a signer should fail")
	}
}
