package imageserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/qrserve/qrserve/pkg/cache"
	"github.com/qrserve/qrserve/pkg/qr"
)

// ServeRequest carries everything Serve needs: the validated render
// parameters and the client's conditional validator, independent of any
// web framework's request type.
type ServeRequest struct {
	// Text is the payload to encode.
	Text string

	// Params are the resolved, validated render parameters.
	Params qr.Params

	// IfNoneMatch is the client's conditional validator header value,
	// empty if absent.
	IfNoneMatch string

	// CacheEnabled disables the shared cache for this request when false.
	CacheEnabled bool
}

// ServeResult is the framework-independent response: status, optional
// body, and the validator for future conditional checks.
type ServeResult struct {
	// Status is http.StatusOK or http.StatusNotModified.
	Status int

	// Body is the image bytes; nil on a 304.
	Body []byte

	// ETag is the validator identifying this rendered image version.
	ETag string

	// ContentType is the MIME type of the image.
	ContentType string
}

// Serve computes the response for a QR image request. If the client's
// conditional validator matches the current entry, the result is a 304
// with no body; otherwise a 200 with the image bytes.
func (r *Renderer) Serve(ctx context.Context, req ServeRequest) (ServeResult, error) {
	var (
		entry *cache.Entry
		err   error
	)
	if req.CacheEnabled {
		entry, err = r.GetOrRender(ctx, req.Text, req.Params)
	} else {
		entry, err = r.Render(req.Text, req.Params)
	}
	if err != nil {
		return ServeResult{}, err
	}

	if etagMatch(req.IfNoneMatch, entry.ETag) {
		notModified.Inc()
		return ServeResult{
			Status:      http.StatusNotModified,
			ETag:        entry.ETag,
			ContentType: entry.ContentType,
		}, nil
	}

	return ServeResult{
		Status:      http.StatusOK,
		Body:        entry.Data,
		ETag:        entry.ETag,
		ContentType: entry.ContentType,
	}, nil
}

// etagMatch reports whether the If-None-Match header value matches etag.
// The header may list several validators or "*"; weak validator prefixes
// are ignored for the comparison, as a 304 never changes the payload.
func etagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	if strings.TrimSpace(ifNoneMatch) == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}
