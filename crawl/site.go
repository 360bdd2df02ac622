package crawl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docsnip"
)

// SiteCrawler processes a documentation site starting from one page: the
// start page's sidebar decides which pages belong to the site.
type SiteCrawler struct {
	Renderer docsnip.Renderer
	Sidebar  docsnip.SidebarExtractor
	Batch    *Batch

	// Filter, if set, drops sidebar links that do not match.
	Filter *docsnip.URLFilter

	// MaxPages caps the number of pages processed, start page included.
	// Zero means no cap.
	MaxPages int

	Logger *slog.Logger
}

// Discover renders the start page and returns the start URL followed by
// every resolved sidebar link, deduplicated, in sidebar order.
func (c *SiteCrawler) Discover(ctx context.Context, startURL string) ([]string, *docsnip.RenderedDocument, error) {
	base, err := docsnip.ParseBaseURL(startURL)
	if err != nil {
		return nil, nil, &docsnip.StageError{Stage: docsnip.StageLoad, Target: startURL, Err: err}
	}

	start, err := RenderWithRetry(ctx, c.Renderer, startURL, c.retryDelays(), c.Logger)
	if err != nil {
		return nil, nil, &docsnip.StageError{Stage: docsnip.StageRender, Target: startURL, Err: err}
	}

	entries := c.Sidebar.ExtractSidebar(start.HTML)

	frontier := NewFrontier(uint(len(entries)+1), DefaultFalsePositiveRate)
	frontier.Push(docsnip.ResolveHref(base, startURL))
	for _, entry := range entries {
		link := docsnip.ResolveHref(base, entry.Href)
		if link == "" || !c.Filter.Match(link) {
			continue
		}
		frontier.Push(link)
	}

	urls := Drain(frontier)
	if c.MaxPages > 0 && len(urls) > c.MaxPages {
		urls = urls[:c.MaxPages]
	}

	if c.Logger != nil {
		c.Logger.Info("discovered pages", "url", startURL, "sidebar", len(entries), "pages", len(urls))
	}

	return urls, start, nil
}

// Crawl discovers the site's pages and runs the batch over them. The
// start page is rendered only once.
func (c *SiteCrawler) Crawl(ctx context.Context, startURL string, progress docsnip.BatchProgressFunc) (*docsnip.BatchResult, []docsnip.PageFailure, error) {
	urls, start, err := c.Discover(ctx, startURL)
	if err != nil {
		return nil, nil, err
	}

	batch := *c.Batch
	batch.Renderer = &primedRenderer{next: c.Batch.Renderer, doc: start, url: urls[0]}
	return batch.Run(ctx, urls, progress)
}

func (c *SiteCrawler) retryDelays() []time.Duration {
	if c.Batch != nil && c.Batch.RetryDelays != nil {
		return c.Batch.RetryDelays
	}
	return DefaultRetryDelays()
}

// primedRenderer serves an already rendered document for its URL once and
// delegates every other render.
type primedRenderer struct {
	next docsnip.Renderer
	url  string

	mu  sync.Mutex
	doc *docsnip.RenderedDocument
}

func (r *primedRenderer) Render(ctx context.Context, url string) (*docsnip.RenderedDocument, error) {
	r.mu.Lock()
	if r.doc != nil && url == r.url {
		doc := r.doc
		r.doc = nil
		r.mu.Unlock()
		return doc, nil
	}
	r.mu.Unlock()
	return r.next.Render(ctx, url)
}

func (r *primedRenderer) Close() error {
	return r.next.Close()
}
