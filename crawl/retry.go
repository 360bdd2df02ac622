package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsnip"
)

// DefaultRetryDelays returns the backoff delays for render retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RenderWithRetry renders url, retrying failed attempts after each of the
// given delays (len(delays)+1 attempts in total). Invalid URLs are not
// retried. The logger, if provided, receives one entry per retry.
func RenderWithRetry(ctx context.Context, r docsnip.Renderer, url string, delays []time.Duration, logger *slog.Logger) (*docsnip.RenderedDocument, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := r.Render(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || docsnip.ErrorCode(err) == docsnip.EINVALID {
			break
		}

		// Check context before sleeping
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger.Warn("retrying render", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
