// Package slog provides log/slog decorators for docsnip services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsnip"
)

// Ensure LoggingRenderer implements docsnip.Renderer.
var _ docsnip.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   docsnip.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next docsnip.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs the URL being rendered and delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (doc *docsnip.RenderedDocument, err error) {
	defer func(begin time.Time) {
		var n int
		if doc != nil {
			n = len(doc.HTML)
		}
		r.logger.Info("render",
			"url", url,
			"bytes", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
