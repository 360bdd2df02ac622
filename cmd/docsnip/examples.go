package main

import (
	"encoding/json"

	"github.com/fwojciec/docsnip"
)

// Run executes the examples command.
func (c *ExamplesCmd) Run(deps *Dependencies) error {
	if deps.Store == nil {
		return fail(deps, docsnip.Errorf(docsnip.EINVALID, "the examples command needs --db"))
	}

	filter := docsnip.ExampleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Language != "" {
		filter.Language = &c.Language
	}
	if c.URL != "" {
		filter.PageURL = &c.URL
	}

	examples, err := deps.Store.FindExamples(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(examples)
}
