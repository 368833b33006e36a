// Package http provides HTTP implementations of enrich.Fetcher and
// enrich.ImageValidator. Both present the same browser-like client identity.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/enrich"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single page request.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxBodySize caps the bytes read from a page response. Longer
// bodies are cut off.
const DefaultMaxBodySize = 10 << 20

// Header values sent with every request.
const (
	AcceptHeader         = "text/html,application/xhtml+xml"
	AcceptLanguageHeader = "en-US,en;q=0.9"
)

// Ensure Fetcher implements enrich.Fetcher at compile time.
var _ enrich.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// Redirects are followed. A Fetcher is safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher or an ImageValidator.
type Option func(*options)

type options struct {
	timeout     time.Duration
	userAgent   string
	transport   http.RoundTripper
	maxBodySize int64
}

// WithTimeout sets the timeout for each request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to enrich.DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithMaxBodySize sets how many bytes of a page body are read.
// Non-positive values keep DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithTransport sets the round tripper used for requests.
// Defaults to http.DefaultTransport, which pools connections across clients.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func newOptions(timeout time.Duration, opts []Option) options {
	o := options{
		timeout:     timeout,
		userAgent:   enrich.DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(DefaultFetchTimeout, opts)
	return &Fetcher{
		client: &http.Client{
			Timeout:   o.timeout,
			Transport: o.transport,
		},
		userAgent:   o.userAgent,
		maxBodySize: o.maxBodySize,
	}
}

// Fetch retrieves the HTML content from the given URL. Non-2xx responses
// are errors. A successful response that is not text/html yields an empty
// string and a nil error. The body is cut off after the configured maximum
// size and decoded to UTF-8 using the declared or sniffed charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	setHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return "", nil
	}

	limited := io.LimitReader(resp.Body, f.maxBodySize)
	body, err := charset.NewReader(limited, contentType)
	if err != nil {
		body = limited
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(html), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func setHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("Accept-Language", AcceptLanguageHeader)
}
