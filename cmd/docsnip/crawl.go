package main

import (
	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	filter, err := docsnip.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return fail(deps, err)
	}

	crawler := &crawl.SiteCrawler{
		Renderer: deps.Renderer,
		Sidebar:  deps.Sidebar,
		Batch:    newBatch(deps, c.Concurrency, c.FailFast),
		Filter:   filter,
		MaxPages: c.MaxPages,
		Logger:   deps.Logger,
	}

	result, failures, err := crawler.Crawl(deps.Ctx, c.URL, progressPrinter(deps.Stderr))
	if err != nil {
		return fail(deps, err)
	}

	return finishBatch(deps, c.Output, result, failures)
}
