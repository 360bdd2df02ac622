package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
)

var _ docsnip.SidebarExtractor = (*SidebarExtractor)(nil)

// DefaultSidebarSelector marks the Docusaurus docs sidebar. It is used
// when the framework is unknown.
const DefaultSidebarSelector = ".theme-doc-sidebar-container"

// sidebarSelectors mark the primary navigation container of each framework,
// as distinct from the main content area.
var sidebarSelectors = map[docsnip.Framework]string{
	docsnip.FrameworkDocusaurus: DefaultSidebarSelector,
	docsnip.FrameworkMkDocs:     ".md-sidebar--primary",
	docsnip.FrameworkSphinx:     ".wy-nav-side, .sphinxsidebar",
	docsnip.FrameworkVitePress:  ".VPSidebar",
	docsnip.FrameworkVuePress:   ".sidebar",
	docsnip.FrameworkGitBook:    "[data-testid='space.sidebar']",
	docsnip.FrameworkNextra:     ".nextra-sidebar-container",
}

// SidebarExtractor extracts the entries of a documentation sidebar.
type SidebarExtractor struct {
	selector string
}

// SidebarOption configures a SidebarExtractor.
type SidebarOption func(*SidebarExtractor)

// WithSidebarSelector pins the sidebar container selector instead of
// choosing it from the detected framework.
func WithSidebarSelector(selector string) SidebarOption {
	return func(e *SidebarExtractor) {
		e.selector = selector
	}
}

// NewSidebarExtractor creates a new SidebarExtractor.
func NewSidebarExtractor(opts ...SidebarOption) *SidebarExtractor {
	e := &SidebarExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractSidebar returns the sidebar links in document order, unique by
// href and title. Hrefs are returned as found. A page without a sidebar
// container yields an empty slice.
func (e *SidebarExtractor) ExtractSidebar(html string) []docsnip.SidebarLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []docsnip.SidebarLink{}
	}
	return extractSidebar(doc, e.selectorFor(doc))
}

func (e *SidebarExtractor) selectorFor(doc *goquery.Document) string {
	if e.selector != "" {
		return e.selector
	}
	if selector, ok := sidebarSelectors[detect(doc)]; ok {
		return selector
	}
	return DefaultSidebarSelector
}

func extractSidebar(doc *goquery.Document, selector string) []docsnip.SidebarLink {
	links := []docsnip.SidebarLink{}

	container := doc.Find(selector).First()
	if container.Length() == 0 {
		return links
	}

	seen := make(map[docsnip.SidebarLink]bool)
	container.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		link := docsnip.SidebarLink{
			Title: nodeText(sel.Nodes[0]),
			Href:  href,
		}
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}
