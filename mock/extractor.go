package mock

import (
	"github.com/fwojciec/docsnip"
)

// Compile-time interface verification.
var (
	_ docsnip.ExampleExtractor  = (*ExampleExtractor)(nil)
	_ docsnip.LinkExtractor     = (*LinkExtractor)(nil)
	_ docsnip.SidebarExtractor  = (*SidebarExtractor)(nil)
	_ docsnip.PageExtractor     = (*PageExtractor)(nil)
	_ docsnip.FrameworkDetector = (*FrameworkDetector)(nil)
)

// ExampleExtractor is a mock implementation of docsnip.ExampleExtractor.
type ExampleExtractor struct {
	ExtractExamplesFn func(html string) []docsnip.CodeExample
}

func (e *ExampleExtractor) ExtractExamples(html string) []docsnip.CodeExample {
	return e.ExtractExamplesFn(html)
}

// LinkExtractor is a mock implementation of docsnip.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}

// SidebarExtractor is a mock implementation of docsnip.SidebarExtractor.
type SidebarExtractor struct {
	ExtractSidebarFn func(html string) []docsnip.SidebarLink
}

func (e *SidebarExtractor) ExtractSidebar(html string) []docsnip.SidebarLink {
	return e.ExtractSidebarFn(html)
}

// PageExtractor is a mock implementation of docsnip.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(doc *docsnip.RenderedDocument) (*docsnip.PageExtraction, error)
}

func (e *PageExtractor) ExtractPage(doc *docsnip.RenderedDocument) (*docsnip.PageExtraction, error) {
	return e.ExtractPageFn(doc)
}

// FrameworkDetector is a mock implementation of docsnip.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) docsnip.Framework
}

func (d *FrameworkDetector) Detect(html string) docsnip.Framework {
	return d.DetectFn(html)
}
