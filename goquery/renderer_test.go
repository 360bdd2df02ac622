package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/goquery"
	"github.com/fwojciec/docsnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizingRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("strips scripts from rendered HTML", func(t *testing.T) {
		t.Parallel()

		// Given: a renderer returning a page with inline scripts
		inner := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) (*docsnip.RenderedDocument, error) {
				return &docsnip.RenderedDocument{
					URL:  url,
					HTML: `<html><body><script>track()</script><h1>Docs</h1></body></html>`,
				}, nil
			},
		}

		// When: rendering through the sanitizer
		doc, err := goquery.NewSanitizingRenderer(inner).Render(context.Background(), "https://example.com/docs")

		// Then: the script is gone and the content and URL are kept
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", doc.URL)
		assert.NotContains(t, doc.HTML, "track()")
		assert.Contains(t, doc.HTML, "<h1>Docs</h1>")
	})

	t.Run("passes render errors through", func(t *testing.T) {
		t.Parallel()

		renderErr := docsnip.Errorf(docsnip.ETIMEOUT, "render timed out")
		inner := &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (*docsnip.RenderedDocument, error) {
				return nil, renderErr
			},
		}

		doc, err := goquery.NewSanitizingRenderer(inner).Render(context.Background(), "https://example.com")

		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, renderErr))
		assert.Equal(t, docsnip.ETIMEOUT, docsnip.ErrorCode(err))
	})
}

func TestSanitizingRenderer_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Renderer{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	require.NoError(t, goquery.NewSanitizingRenderer(inner).Close())
	assert.True(t, closed)
}
