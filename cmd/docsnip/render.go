package main

import (
	"fmt"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/fs"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	doc, err := render(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	if err := fs.WriteHTML(c.Output, doc.HTML); err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: c.Output, Err: err})
	}

	fmt.Fprintf(deps.Stdout, "Rendered %s (%d bytes). HTML saved to %s\n", doc.URL, len(doc.HTML), c.Output)
	return nil
}
