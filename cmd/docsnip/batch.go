package main

import (
	"github.com/fwojciec/docsnip"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := deps.Links.LoadLinks(c.LinksFile, c.BaseURL)
	if err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageLoad, Target: c.LinksFile, Err: err})
	}

	result, failures, err := newBatch(deps, c.Concurrency, c.FailFast).Run(deps.Ctx, urls, progressPrinter(deps.Stderr))
	if err != nil {
		return fail(deps, err)
	}

	return finishBatch(deps, c.Output, result, failures)
}
