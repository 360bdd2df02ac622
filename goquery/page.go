// Package goquery implements page, link, sidebar and code-example
// extraction on top of goquery and the golang.org/x/net/html node tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
)

var _ docsnip.PageExtractor = (*PageExtractor)(nil)

// PageExtractor extracts the title, links and code examples of a rendered
// page, parsing the HTML once.
type PageExtractor struct{}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

// ExtractPage extracts a rendered document. The document URL is the base
// for link resolution; an invalid URL returns EINVALID.
func (e *PageExtractor) ExtractPage(rd *docsnip.RenderedDocument) (*docsnip.PageExtraction, error) {
	base, err := docsnip.ParseBaseURL(rd.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rd.HTML))
	if err != nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "failed to parse HTML: %v", err)
	}

	return &docsnip.PageExtraction{
		URL:       rd.URL,
		PageTitle: pageTitle(doc),
		Links:     extractLinks(doc, base),
		Examples:  extractExamples(doc),
	}, nil
}

// pageTitle returns the first h1, falling back to the <title> element.
func pageTitle(doc *goquery.Document) string {
	if title := firstText(doc, "h1"); title != "" {
		return title
	}
	return firstText(doc, "title")
}
