package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/enrich"
)

// DefaultProbeTimeout is the default timeout for an image probe.
const DefaultProbeTimeout = 5 * time.Second

var _ enrich.ImageValidator = (*ImageValidator)(nil)

// ImageValidator checks image URLs with HEAD requests.
type ImageValidator struct {
	client    *http.Client
	userAgent string
}

// NewImageValidator creates a new ImageValidator.
func NewImageValidator(opts ...Option) *ImageValidator {
	o := newOptions(DefaultProbeTimeout, opts)
	return &ImageValidator{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		userAgent: o.userAgent,
	}
}

// ValidateImage accepts url when the response declares an image/* content
// type and a Content-Length above enrich.MinImageBytes. Redirects are
// followed; any failure, including a malformed length, rejects the image.
func (v *ImageValidator) ValidateImage(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	setHeaders(req, v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return false
	}
	size, err := declaredLength(resp.Header.Get("Content-Length"))
	if err != nil {
		return false
	}
	return size > enrich.MinImageBytes
}

// declaredLength parses a Content-Length header. A missing header is zero.
func declaredLength(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
