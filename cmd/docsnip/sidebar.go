package main

import (
	"fmt"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/fs"
)

// Run executes the sidebar command. The output is a flat JSON array of
// {title, href} entries, which the batch command accepts as a links file.
func (c *SidebarCmd) Run(deps *Dependencies) error {
	doc, err := render(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	links := deps.Sidebar.ExtractSidebar(doc.HTML)
	if links == nil {
		links = []docsnip.SidebarLink{}
	}

	if err := fs.WriteJSON(c.Output, links); err != nil {
		return fail(deps, &docsnip.StageError{Stage: docsnip.StageWrite, Target: c.Output, Err: err})
	}

	framework := string(deps.Detector.Detect(doc.HTML))
	if framework == "" {
		framework = "unknown framework"
	}
	fmt.Fprintf(deps.Stdout, "Found %d sidebar links on %s (%s). JSON saved to %s\n", len(links), doc.URL, framework, c.Output)
	return nil
}
