package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
)

var _ docsnip.FrameworkDetector = (*Detector)(nil)

// frameworkMarker lists selectors unique to a documentation framework.
type frameworkMarker struct {
	framework docsnip.Framework
	selectors []string
}

// frameworkMarkers are checked in order. VitePress precedes VuePress since
// it is the VuePress successor and shares some markup.
var frameworkMarkers = []frameworkMarker{
	{docsnip.FrameworkDocusaurus, []string{
		"#__docusaurus_skipToContent_fallback",
		".theme-doc-sidebar-container",
		"#__docusaurus",
	}},
	{docsnip.FrameworkMkDocs, []string{
		"[data-md-color-scheme]",
		"[data-md-component]",
		".md-nav--primary",
	}},
	{docsnip.FrameworkSphinx, []string{
		".toctree-wrapper",
		".wy-nav-side",
		".sphinxsidebar",
	}},
	{docsnip.FrameworkVitePress, []string{
		"#VPContent",
		".VPDoc",
		".VPSidebar",
	}},
	{docsnip.FrameworkVuePress, []string{
		".theme-default-content",
		".sidebar-links",
		".vuepress-navbar",
	}},
	{docsnip.FrameworkGitBook, []string{
		"[data-testid='space.sidebar']",
		"[data-testid='page.desktopTableOfContents']",
	}},
	{docsnip.FrameworkNextra, []string{
		".nextra-navbar",
		".nextra-sidebar-container",
		".nextra-toc",
	}},
}

// Detector identifies documentation frameworks from HTML content.
// It checks the meta generator tag first, then framework-specific CSS
// classes, ids and data attributes.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(html string) docsnip.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docsnip.FrameworkUnknown
	}
	return detect(doc)
}

func detect(doc *goquery.Document) docsnip.Framework {
	if framework := detectFromMetaGenerator(doc); framework != docsnip.FrameworkUnknown {
		return framework
	}

	for _, m := range frameworkMarkers {
		for _, selector := range m.selectors {
			if doc.Find(selector).Length() > 0 {
				return m.framework
			}
		}
	}
	return docsnip.FrameworkUnknown
}

// detectFromMetaGenerator checks the meta generator tag for framework identification.
func detectFromMetaGenerator(doc *goquery.Document) docsnip.Framework {
	content, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	generator := strings.ToLower(content)
	if generator == "" {
		return docsnip.FrameworkUnknown
	}

	for _, f := range []docsnip.Framework{
		docsnip.FrameworkSphinx,
		docsnip.FrameworkGitBook,
		docsnip.FrameworkDocusaurus,
		docsnip.FrameworkMkDocs,
		docsnip.FrameworkVitePress,
		docsnip.FrameworkVuePress,
		docsnip.FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return docsnip.FrameworkUnknown
}
