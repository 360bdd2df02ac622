package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageLoad, Target: c.File, Err: err})
	}

	var out any
	var summary string
	if c.Links {
		links, err := deps.Anchors.ExtractLinks(string(data), c.BaseURL)
		if err != nil {
			return fail(deps, &docsnip.StageError{Stage: docsnip.StageLoad, Target: c.File, Err: err})
		}
		out, summary = links, fmt.Sprintf("Extracted %d links", len(links))
	} else {
		examples := deps.Examples.ExtractExamples(string(data))
		out, summary = examples, fmt.Sprintf("Extracted %d code examples", len(examples))
	}

	if err := fs.WriteJSON(c.Output, out); err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: c.Output, Err: err})
	}

	fmt.Fprintf(deps.Stdout, "%s from %s. JSON saved to %s\n", summary, c.File, c.Output)
	return nil
}
