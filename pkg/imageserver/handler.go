package imageserver

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/qrserve/qrserve/pkg/logging"
	"github.com/qrserve/qrserve/pkg/qr"
)

// DefaultImagePath is the path the image-serving endpoint is mounted on.
const DefaultImagePath = "/qr/images/serve/"

// Handler serves QR images over HTTP with conditional-request semantics.
type Handler struct {
	renderer      *Renderer
	signer        *Signer
	allowExternal bool
	logger        zerolog.Logger
}

// NewHandler creates the HTTP handler. With allowExternal false (the
// safe default) every request must carry a valid signed token; anything
// else is rejected with 403.
func NewHandler(renderer *Renderer, signer *Signer, allowExternal bool) *Handler {
	if signer == nil && !allowExternal {
		panic("a signer is required unless external requests are allowed")
	}
	return &Handler{
		renderer:      renderer,
		signer:        signer,
		allowExternal: allowExternal,
		logger:        logging.NewLogger("imageserver"),
	}
}

// Routes returns a router serving the image endpoint, GET only.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeImage)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "only GET is supported", http.StatusMethodNotAllowed)
	})
	return r
}

// ServeImage handles a single image request: parameter parsing,
// protection policy, then conditional serving via Serve.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	text, err := decodeText(query.Get("text"))
	if err != nil {
		http.Error(w, "invalid text parameter", http.StatusBadRequest)
		return
	}

	opts := qr.DefaultOptions()
	opts.Size = query.Get("size")
	opts.Version = query.Get("version")
	opts.Format = query.Get("image_format")
	opts.ErrorCorrection = query.Get("error_correction")
	if border := query.Get("border"); border != "" {
		n, err := strconv.Atoi(border)
		if err != nil {
			http.Error(w, "invalid border parameter", http.StatusBadRequest)
			return
		}
		opts.Border = n
	}

	params := opts.Resolve()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Fails closed: without explicit permission for external requests,
	// only requests carrying a token signed by this server are served.
	if !h.allowExternal {
		if err := h.signer.VerifyToken(query.Get("token"), params); err != nil {
			rejectedRequests.Inc()
			h.logger.Warn().Err(err).
				Str("remote", r.RemoteAddr).
				Msg("rejected external image request")
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	result, err := h.renderer.Serve(r.Context(), ServeRequest{
		Text:         text,
		Params:       params,
		IfNoneMatch:  r.Header.Get("If-None-Match"),
		CacheEnabled: query.Get("cache_enabled") != "false" && query.Get("cache_enabled") != "0",
	})
	if err != nil {
		http.Error(w, "failed to render image", http.StatusInternalServerError)
		return
	}

	imagesServed.WithLabelValues(string(params.Format), strconv.Itoa(result.Status)).Inc()

	w.Header().Set("ETag", result.ETag)
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(h.renderer.TTL().Seconds())))
	if result.Status == http.StatusNotModified {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Body); err != nil {
		h.logger.Error().Err(err).Msg("failed to write image response")
	}
}

// decodeText decodes the base64url text parameter, with or without
// padding.
func decodeText(encoded string) (string, error) {
	if data, err := base64.URLEncoding.DecodeString(encoded); err == nil {
		return string(data), nil
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(data), nil
}
