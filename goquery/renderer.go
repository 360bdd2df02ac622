package goquery

import (
	"context"

	"github.com/fwojciec/docsnip"
)

var _ docsnip.Renderer = (*SanitizingRenderer)(nil)

// SanitizingRenderer wraps a Renderer and strips script, style and
// noscript elements from every snapshot it returns.
type SanitizingRenderer struct {
	next docsnip.Renderer
}

// NewSanitizingRenderer creates a new SanitizingRenderer.
func NewSanitizingRenderer(next docsnip.Renderer) *SanitizingRenderer {
	return &SanitizingRenderer{next: next}
}

// Render delegates to the wrapped renderer and sanitizes the result.
func (r *SanitizingRenderer) Render(ctx context.Context, url string) (*docsnip.RenderedDocument, error) {
	doc, err := r.next.Render(ctx, url)
	if err != nil {
		return nil, err
	}
	html, err := Sanitize(doc.HTML)
	if err != nil {
		return nil, err
	}
	return &docsnip.RenderedDocument{URL: doc.URL, HTML: html}, nil
}

// Close delegates to the wrapped renderer.
func (r *SanitizingRenderer) Close() error {
	return r.next.Close()
}
