// Package rod implements docsnip.Renderer with headless Chrome driven by go-rod.
package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/go-rod/rod/lib/proto"
)

// Render defaults.
const (
	DefaultTimeout          = 60 * time.Second
	DefaultReadyTimeout     = 30 * time.Second
	DefaultFallbackTimeout  = 20 * time.Second
	DefaultReadySelector    = "pre code"
	DefaultFallbackSelector = "div.theme-doc-markdown, main, article"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
)

var errClosed = docsnip.Errorf(docsnip.EINVALID, "renderer is closed")

// Ensure Renderer implements docsnip.Renderer at compile time.
var _ docsnip.Renderer = (*Renderer)(nil)

// Renderer renders pages in headless Chrome and snapshots the hydrated DOM.
// Renderer is safe for concurrent use by multiple goroutines; each render
// uses its own browser tab.
type Renderer struct {
	manager          *BrowserManager
	managerOpts      []ManagerOption
	timeout          time.Duration
	readyTimeout     time.Duration
	fallbackTimeout  time.Duration
	readySelector    string
	fallbackSelector string
	userAgent        string
	postRenderDelay  time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout bounds a whole render, navigation included.
// Defaults to DefaultTimeout (60s).
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithReadySelector sets the selector whose presence marks the content as
// rendered, and how long to wait for it. Defaults to "pre code" for 30s.
func WithReadySelector(selector string, wait time.Duration) Option {
	return func(r *Renderer) {
		r.readySelector = selector
		r.readyTimeout = wait
	}
}

// WithFallbackSelector sets the selector waited for when the ready selector
// does not appear. Defaults to the Docusaurus markdown container, main or
// article for 20s.
func WithFallbackSelector(selector string, wait time.Duration) Option {
	return func(r *Renderer) {
		r.fallbackSelector = selector
		r.fallbackTimeout = wait
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithPostRenderDelay adds a fixed wait after the content is ready, for
// sites that keep injecting content after the first code block appears.
func WithPostRenderDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.postRenderDelay = d
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(r *Renderer) {
		r.managerOpts = append(r.managerOpts, opts...)
	}
}

// NewRenderer launches a headless browser and returns a Renderer using it.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		timeout:          DefaultTimeout,
		readyTimeout:     DefaultReadyTimeout,
		fallbackTimeout:  DefaultFallbackTimeout,
		readySelector:    DefaultReadySelector,
		fallbackSelector: DefaultFallbackSelector,
		userAgent:        DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}

	manager, err := NewBrowserManager(r.managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager
	return r, nil
}

// Render navigates to url in a fresh tab, waits for the content to be
// ready and returns the rendered HTML. The tab is closed whatever the
// outcome.
func (r *Renderer) Render(ctx context.Context, url string) (*docsnip.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.manager.Acquire()
	if err != nil {
		return nil, err
	}
	defer r.manager.Release()

	renderCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, r.classify(ctx, url, fmt.Errorf("opening tab: %w", err))
	}
	defer page.Close()

	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return nil, r.classify(ctx, url, fmt.Errorf("setting user agent: %w", err))
		}
	}

	page = page.Context(renderCtx)

	waitDOM := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return nil, r.classify(ctx, url, fmt.Errorf("navigating: %w", err))
	}
	waitDOM()

	// The content is ready once the ready selector appears. Otherwise wait
	// for the fallback container; if that does not show up either, the
	// snapshot is taken anyway.
	if _, err := page.Timeout(r.readyTimeout).Element(r.readySelector); err != nil {
		if renderCtx.Err() != nil {
			return nil, r.classify(ctx, url, renderCtx.Err())
		}
		_, _ = page.Timeout(r.fallbackTimeout).Element(r.fallbackSelector)
	}

	if r.postRenderDelay > 0 {
		select {
		case <-renderCtx.Done():
		case <-time.After(r.postRenderDelay):
		}
	}
	if err := renderCtx.Err(); err != nil {
		return nil, r.classify(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, r.classify(ctx, url, fmt.Errorf("reading HTML: %w", err))
	}

	return &docsnip.RenderedDocument{URL: url, HTML: html}, nil
}

// classify maps a render error onto the docsnip error codes. Cancellation
// of the caller's context is returned unchanged.
func (r *Renderer) classify(ctx context.Context, url string, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", docsnip.Errorf(docsnip.ETIMEOUT, "rendering %s timed out after %s", url, r.timeout), err)
	}
	return fmt.Errorf("%w: %w", docsnip.Errorf(docsnip.ERENDER, "rendering %s failed: %v", url, err), err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// It exists for tests that verify process cleanup.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}
