package mock

import (
	"context"

	"github.com/fwojciec/docsnip"
)

var _ docsnip.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docsnip.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (*docsnip.RenderedDocument, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (*docsnip.RenderedDocument, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
