package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
)

var _ docsnip.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts every navigable link of a page as an absolute URL.
// PageExtractor shares its extraction; LinkExtractor serves callers that
// only need the links of a saved page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns unique absolute URLs in document order.
// Fragment-only, mailto:, tel:, javascript: and data: links are skipped.
// Fragments are stripped, so URLs differing only by fragment collapse to one.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := docsnip.ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "failed to parse HTML: %v", err)
	}

	return extractLinks(doc, base), nil
}

func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	links := []string{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := docsnip.ResolveHref(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links
}
