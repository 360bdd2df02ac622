// Package http provides an HTTP-based implementation of docsnip.Renderer
// for documentation sites that are rendered on the server.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsnip"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent matches the browser renderer's default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Ensure Renderer implements docsnip.Renderer at compile time.
var _ docsnip.Renderer = (*Renderer)(nil)

// Renderer retrieves HTML with plain HTTP requests.
// Unlike rod.Renderer, it does not execute JavaScript and therefore only
// suits sites whose content is present in the served HTML.
type Renderer struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// NewRenderer creates a new HTTP-based Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// Render retrieves the HTML served at url.
func (r *Renderer) Render(ctx context.Context, url string) (*docsnip.RenderedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, r.classify(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, docsnip.Errorf(docsnip.ERENDER, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, r.classify(ctx, url, err)
	}

	return &docsnip.RenderedDocument{URL: url, HTML: string(body)}, nil
}

func (r *Renderer) classify(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", docsnip.Errorf(docsnip.ETIMEOUT, "fetching %s timed out after %s", url, r.timeout), err)
	}
	return fmt.Errorf("%w: %w", docsnip.Errorf(docsnip.ERENDER, "fetching %s failed: %v", url, err), err)
}

// Close releases resources. The HTTP renderer holds none.
func (r *Renderer) Close() error {
	return nil
}
