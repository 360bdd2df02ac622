// Package crawl renders and extracts documentation pages in bulk.
// It coordinates rate limiting, retries, bounded parallelism and
// per-page failure reporting around a docsnip.Renderer.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsnip"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency renders one page at a time.
const DefaultConcurrency = 1

// Batch renders and extracts a list of pages.
type Batch struct {
	Renderer docsnip.Renderer
	Pages    docsnip.PageExtractor

	// RateLimiter, if set, is waited on per host before every render.
	RateLimiter docsnip.DomainLimiter

	// Store, if set, receives every extracted page in input order.
	Store docsnip.PageService

	Concurrency int
	RetryDelays []time.Duration

	// FailFast aborts the batch on the first failed page. Otherwise
	// failures are reported and the remaining pages are processed.
	FailFast bool

	Logger *slog.Logger
}

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	page     *docsnip.PageExtraction
	err      *docsnip.StageError
}

// Run processes urls and returns the extracted pages in input order,
// together with the pages that failed. The progress callback, if provided,
// is called once per page as pages complete.
//
// With FailFast the first failure is returned as a *docsnip.StageError and
// no result is produced. Canceling ctx aborts the batch with ctx.Err().
func (b *Batch) Run(ctx context.Context, urls []string, progress docsnip.BatchProgressFunc) (*docsnip.BatchResult, []docsnip.PageFailure, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var runErr error
	go func() {
		for i, url := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				result := b.processURL(gctx, i, url)
				resultCh <- result
				if result.err != nil && b.FailFast {
					return result.err
				}
				return nil
			})
		}
		runErr = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]pageResult, len(urls))
	completed := 0
	for result := range resultCh {
		completed++
		results[result.position] = result
		if progress != nil {
			event := docsnip.BatchProgress{
				URL:       result.url,
				Completed: completed,
				Total:     len(urls),
			}
			if result.err != nil {
				event.Error = result.err
			}
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if runErr != nil {
		return nil, nil, runErr
	}

	out := &docsnip.BatchResult{Pages: make([]docsnip.PageSummary, 0, len(urls))}
	var failures []docsnip.PageFailure
	for _, result := range results {
		if result.err != nil {
			failures = append(failures, failure(result.err))
			continue
		}
		if b.Store != nil {
			if err := b.Store.SavePage(ctx, result.page); err != nil {
				serr := &docsnip.StageError{Stage: docsnip.StageWrite, Target: result.url, Err: err}
				if b.FailFast {
					return nil, nil, serr
				}
				failures = append(failures, failure(serr))
			}
		}
		out.Pages = append(out.Pages, result.page.Summary())
	}

	return out, failures, nil
}

// processURL renders and extracts a single URL.
func (b *Batch) processURL(ctx context.Context, position int, url string) pageResult {
	result := pageResult{position: position, url: url}

	u, err := docsnip.ParseBaseURL(url)
	if err != nil {
		result.err = &docsnip.StageError{Stage: docsnip.StageLoad, Target: url, Err: err}
		return result
	}

	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = &docsnip.StageError{Stage: docsnip.StageRender, Target: url, Err: err}
			return result
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	doc, err := RenderWithRetry(ctx, b.Renderer, url, delays, b.Logger)
	if err != nil {
		result.err = &docsnip.StageError{Stage: docsnip.StageRender, Target: url, Err: err}
		return result
	}

	page, err := b.Pages.ExtractPage(doc)
	if err != nil {
		result.err = &docsnip.StageError{Stage: docsnip.StageLoad, Target: url, Err: err}
		return result
	}
	result.page = page

	return result
}

func failure(err *docsnip.StageError) docsnip.PageFailure {
	return docsnip.PageFailure{URL: err.Target, Stage: err.Stage, Err: err.Err}
}
