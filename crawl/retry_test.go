package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/crawl"
	"github.com/fwojciec/docsnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noDelays = []time.Duration{0, 0, 0}

func TestRenderWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		r := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) (*docsnip.RenderedDocument, error) {
				calls++
				return &docsnip.RenderedDocument{URL: url, HTML: "ok"}, nil
			},
		}

		doc, err := crawl.RenderWithRetry(context.Background(), r, "https://x.com", noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", doc.HTML)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures and logs each retry", func(t *testing.T) {
		t.Parallel()

		// Given: a renderer failing twice before succeeding
		calls := 0
		r := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) (*docsnip.RenderedDocument, error) {
				calls++
				if calls < 3 {
					return nil, docsnip.Errorf(docsnip.ETIMEOUT, "timed out")
				}
				return &docsnip.RenderedDocument{URL: url, HTML: "ok"}, nil
			},
		}
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		// When: rendering with retries
		doc, err := crawl.RenderWithRetry(context.Background(), r, "https://x.com", noDelays, logger)

		// Then: the third attempt succeeds and two retries are logged
		require.NoError(t, err)
		assert.Equal(t, "ok", doc.HTML)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("retrying render")))
	})

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		r := &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (*docsnip.RenderedDocument, error) {
				calls++
				return nil, docsnip.Errorf(docsnip.ERENDER, "attempt %d", calls)
			},
		}

		_, err := crawl.RenderWithRetry(context.Background(), r, "https://x.com", noDelays, nil)

		assert.Equal(t, 4, calls)
		assert.Equal(t, docsnip.ERENDER, docsnip.ErrorCode(err))
		assert.Equal(t, "attempt 4", docsnip.ErrorMessage(err))
	})

	t.Run("does not retry invalid URLs", func(t *testing.T) {
		t.Parallel()

		calls := 0
		r := &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (*docsnip.RenderedDocument, error) {
				calls++
				return nil, docsnip.Errorf(docsnip.EINVALID, "bad URL")
			},
		}

		_, err := crawl.RenderWithRetry(context.Background(), r, "::", noDelays, nil)

		assert.Equal(t, 1, calls)
		assert.Equal(t, docsnip.EINVALID, docsnip.ErrorCode(err))
	})

	t.Run("stops retrying when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		r := &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (*docsnip.RenderedDocument, error) {
				calls++
				cancel()
				return nil, errors.New("navigation aborted")
			},
		}

		_, err := crawl.RenderWithRetry(ctx, r, "https://x.com", []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
