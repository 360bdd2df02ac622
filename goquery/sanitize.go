package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
)

// Sanitize returns html with script, style and noscript elements removed.
// The input string is not modified; the result is a fresh serialization.
func Sanitize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docsnip.Errorf(docsnip.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("script, style, noscript").Remove()
	return goquery.OuterHtml(doc.Selection)
}
