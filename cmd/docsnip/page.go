package main

import (
	"fmt"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/fs"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	doc, err := render(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	page, err := deps.Pages.ExtractPage(doc)
	if err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageLoad, Target: c.URL, Err: err})
	}

	if err := fs.WriteJSON(c.Output, page); err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: c.Output, Err: err})
	}

	if deps.Store != nil {
		if err := deps.Store.SavePage(deps.Ctx, page); err != nil {
			return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: c.URL, Err: err})
		}
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d code examples and %d links from %s. JSON saved to %s\n",
		len(page.Examples), len(page.Links), page.URL, c.Output)
	return nil
}
