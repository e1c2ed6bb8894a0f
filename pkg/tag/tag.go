// Package tag exposes QR code helpers for the html/template engine.
//
// The functions come in two flavors: qr_* renders the code inline
// (an <svg> element or a base64 <img> for PNG), qr_url_* emits a signed
// URL to the image-serving endpoint so the browser fetches and caches
// the image separately.
//
// Options are passed as name/value pairs after the payload:
//
//	{{qr_from_text "hello" "size" "t" "image_format" "png"}}
//	{{qr_url_from_text "hello" "version" "10"}}
//
// Recognized options: size, version, border, image_format,
// error_correction, and (URL flavor only) cache_enabled.
package tag

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/qrserve/qrserve/pkg/imageserver"
	"github.com/qrserve/qrserve/pkg/qr"
)

// parseOptions folds name/value pairs onto the default options.
func parseOptions(pairs []string) (qr.Options, bool, error) {
	opts := qr.DefaultOptions()
	cacheEnabled := true

	if len(pairs)%2 != 0 {
		return opts, cacheEnabled, fmt.Errorf("options must be name/value pairs, got %d values", len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		name, value := pairs[i], pairs[i+1]
		switch name {
		case "size":
			opts.Size = value
		case "version":
			opts.Version = value
		case "border":
			n, err := strconv.Atoi(value)
			if err != nil {
				return opts, cacheEnabled, fmt.Errorf("border must be an integer: %q", value)
			}
			opts.Border = n
		case "image_format":
			opts.Format = value
		case "error_correction":
			opts.ErrorCorrection = value
		case "cache_enabled":
			cacheEnabled = value != "false" && value != "0"
		default:
			return opts, cacheEnabled, fmt.Errorf("unknown option %q", name)
		}
	}
	return opts, cacheEnabled, nil
}

func resolve(pairs []string) (qr.Params, bool, error) {
	opts, cacheEnabled, err := parseOptions(pairs)
	if err != nil {
		return qr.Params{}, false, err
	}
	params := opts.Resolve()
	if err := params.Validate(); err != nil {
		return qr.Params{}, false, err
	}
	return params, cacheEnabled, nil
}

// embedded renders the QR code inline.
func embedded(text string, pairs ...string) (template.HTML, error) {
	params, _, err := resolve(pairs)
	if err != nil {
		return "", err
	}
	fragment, err := qr.RenderHTML(text, params)
	if err != nil {
		return "", err
	}
	return template.HTML(fragment), nil
}

// FuncMap returns the template functions. The signer is only needed for
// the qr_url_* flavor and may be nil when those are not used.
func FuncMap(signer *imageserver.URLSigner) template.FuncMap {
	imageURL := func(text string, pairs ...string) (template.URL, error) {
		if signer == nil {
			return "", fmt.Errorf("qr_url_* requires a URL signer")
		}
		params, cacheEnabled, err := resolve(pairs)
		if err != nil {
			return "", err
		}
		return template.URL(signer.ImageURL(text, params, cacheEnabled)), nil
	}

	return template.FuncMap{
		"qr_from_text": embedded,
		"qr_for_email": func(email string, pairs ...string) (template.HTML, error) {
			return embedded(qr.EmailText(email), pairs...)
		},
		"qr_for_tel": func(phone string, pairs ...string) (template.HTML, error) {
			return embedded(qr.TelText(phone), pairs...)
		},
		"qr_for_sms": func(phone string, pairs ...string) (template.HTML, error) {
			return embedded(qr.SMSText(phone), pairs...)
		},
		"qr_for_geolocation": func(lat, lng, alt float64, pairs ...string) (template.HTML, error) {
			return embedded(qr.GeolocationText(lat, lng, alt), pairs...)
		},
		"qr_for_google_maps": func(lat, lng float64, pairs ...string) (template.HTML, error) {
			return embedded(qr.GoogleMapsText(lat, lng), pairs...)
		},
		"qr_for_youtube": func(videoID string, pairs ...string) (template.HTML, error) {
			return embedded(qr.YouTubeText(videoID), pairs...)
		},
		"qr_for_google_play": func(packageID string, pairs ...string) (template.HTML, error) {
			return embedded(qr.GooglePlayText(packageID), pairs...)
		},
		"qr_for_contact": func(contact qr.Contact, pairs ...string) (template.HTML, error) {
			return embedded(qr.ContactText(contact), pairs...)
		},
		"qr_for_wifi": func(wifi qr.WiFi, pairs ...string) (template.HTML, error) {
			return embedded(qr.WiFiText(wifi), pairs...)
		},

		"qr_url_from_text": imageURL,
		"qr_url_for_email": func(email string, pairs ...string) (template.URL, error) {
			return imageURL(qr.EmailText(email), pairs...)
		},
		"qr_url_for_tel": func(phone string, pairs ...string) (template.URL, error) {
			return imageURL(qr.TelText(phone), pairs...)
		},
		"qr_url_for_sms": func(phone string, pairs ...string) (template.URL, error) {
			return imageURL(qr.SMSText(phone), pairs...)
		},
		"qr_url_for_geolocation": func(lat, lng, alt float64, pairs ...string) (template.URL, error) {
			return imageURL(qr.GeolocationText(lat, lng, alt), pairs...)
		},
		"qr_url_for_google_maps": func(lat, lng float64, pairs ...string) (template.URL, error) {
			return imageURL(qr.GoogleMapsText(lat, lng), pairs...)
		},
		"qr_url_for_youtube": func(videoID string, pairs ...string) (template.URL, error) {
			return imageURL(qr.YouTubeText(videoID), pairs...)
		},
		"qr_url_for_google_play": func(packageID string, pairs ...string) (template.URL, error) {
			return imageURL(qr.GooglePlayText(packageID), pairs...)
		},
		"qr_url_for_contact": func(contact qr.Contact, pairs ...string) (template.URL, error) {
			return imageURL(qr.ContactText(contact), pairs...)
		},
		"qr_url_for_wifi": func(wifi qr.WiFi, pairs ...string) (template.URL, error) {
			return imageURL(qr.WiFiText(wifi), pairs...)
		},
	}
}
