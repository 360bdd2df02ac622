package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/crawl"
	"github.com/fwojciec/docsnip/fs"
)

// fail prints err to stderr and returns it. Stage errors keep their stage
// and target in the message.
func fail(deps *Dependencies, err error) error {
	var serr *docsnip.StageError
	if errors.As(err, &serr) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", serr)
	} else {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsnip.ErrorMessageOrText(err))
	}
	return err
}

func (deps *Dependencies) retryDelays() []time.Duration {
	if deps.RetryDelays != nil {
		return deps.RetryDelays
	}
	return crawl.DefaultRetryDelays()
}

// render renders a single page with retries.
func render(deps *Dependencies, url string) (*docsnip.RenderedDocument, error) {
	if _, err := docsnip.ParseBaseURL(url); err != nil {
		return nil, &docsnip.StageError{Stage: docsnip.StageLoad, Target: url, Err: err}
	}
	doc, err := crawl.RenderWithRetry(deps.Ctx, deps.Renderer, url, deps.retryDelays(), deps.Logger)
	if err != nil {
		return nil, &docsnip.StageError{Stage: docsnip.StageRender, Target: url, Err: err}
	}
	return doc, nil
}

func newBatch(deps *Dependencies, concurrency int, failFast bool) *crawl.Batch {
	return &crawl.Batch{
		Renderer:    deps.Renderer,
		Pages:       deps.Pages,
		RateLimiter: deps.Limiter,
		Store:       deps.Store,
		Concurrency: concurrency,
		RetryDelays: deps.retryDelays(),
		FailFast:    failFast,
		Logger:      deps.Logger,
	}
}

// progressPrinter reports each completed page on w.
func progressPrinter(w io.Writer) docsnip.BatchProgressFunc {
	return func(p docsnip.BatchProgress) {
		if p.Error != nil {
			fmt.Fprintf(w, "[%d/%d] %s (failed)\n", p.Completed, p.Total, p.URL)
			return
		}
		fmt.Fprintf(w, "[%d/%d] %s\n", p.Completed, p.Total, p.URL)
	}
}

// finishBatch reports skipped pages, writes the result and prints the
// summary line.
func finishBatch(deps *Dependencies, output string, result *docsnip.BatchResult, failures []docsnip.PageFailure) error {
	for _, f := range failures {
		fmt.Fprintf(deps.Stderr, "skip %s (%s): %s\n", f.URL, f.Stage, docsnip.ErrorMessageOrText(f.Err))
	}

	if err := fs.WriteJSON(output, result); err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: output, Err: err})
	}

	examples := 0
	for _, p := range result.Pages {
		examples += len(p.Examples)
	}
	fmt.Fprintf(deps.Stdout, "Processed %d pages with %d code examples (%d failed). JSON saved to %s\n",
		len(result.Pages), examples, len(failures), output)
	return nil
}
