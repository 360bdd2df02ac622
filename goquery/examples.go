package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsnip"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ docsnip.ExampleExtractor = (*ExampleExtractor)(nil)

// ExampleExtractor associates code blocks with the section heading and
// prose that precede them.
//
// It follows the common documentation layout of heading, then prose, then
// a fenced code block. Only h2 and h3 are section headings; h1 is the page
// title. ExampleExtractor is stateless and safe for concurrent use.
//
// PageExtractor runs the same extraction over a page it has already parsed;
// use ExampleExtractor when only the examples of a saved page are needed.
type ExampleExtractor struct{}

// NewExampleExtractor creates a new ExampleExtractor.
func NewExampleExtractor() *ExampleExtractor {
	return &ExampleExtractor{}
}

// ExtractExamples returns one example per non-empty code block, in
// document order. HTML that fails to parse yields no examples.
func (e *ExampleExtractor) ExtractExamples(html string) []docsnip.CodeExample {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return extractExamples(doc)
}

func extractExamples(doc *goquery.Document) []docsnip.CodeExample {
	pageTitle := firstText(doc, "h1")
	if pageTitle == "" {
		pageTitle = docsnip.DefaultExampleTitle
	}

	examples := []docsnip.CodeExample{}
	doc.Find("pre code").Each(func(_ int, sel *goquery.Selection) {
		code := sel.Nodes[0]
		pre := closest(code.Parent, atom.Pre)

		// Nested code nodes belong to the outer code node's example.
		if c := closest(code.Parent, atom.Code); c != nil && isAncestor(pre, c) {
			return
		}

		text := codeText(code)
		if strings.TrimSpace(text) == "" {
			return
		}

		block := code
		if pre != nil {
			block = pre
		}

		heading := nearestPreceding(block, isHeading, maxAscent)
		title := pageTitle
		if heading != nil {
			if t := nodeText(heading); t != "" {
				title = t
			}
		}

		examples = append(examples, docsnip.CodeExample{
			Title:       title,
			Description: describe(heading, block),
			Language:    languageOf(code, pre),
			Code:        text,
		})
	})
	return examples
}

// describe collects the prose that introduces block. With a heading it is
// the prose between the heading and the block; without one it is the prose
// preceding the block up to the nearest heading or content boundary.
func describe(heading, block *html.Node) string {
	var texts []string
	if heading != nil {
		texts = proseAfter(heading, block)
	} else {
		texts = proseBefore(block)
	}
	return joinProse(texts)
}

// proseAfter walks the siblings following heading until block, or the
// sibling containing it, and collects prose. Only div, section and article
// wrappers are descended into; descent stops at the first nested code
// block. Other elements are skipped whole. A later section heading ends
// the walk.
func proseAfter(heading, block *html.Node) []string {
	var texts []string
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib == block || isHeading(sib) {
			break
		}
		if isAncestor(sib, block) {
			if isWrapper(sib) {
				descendProse(sib, &texts)
			}
			break
		}
		switch {
		case isProse(sib):
			if !containsCodeBlock(sib) {
				texts = append(texts, nodeText(sib))
			}
		case isWrapper(sib):
			if descendProse(sib, &texts) == stopHeading {
				return texts
			}
		}
	}
	return texts
}

type stopReason int

const (
	stopNone stopReason = iota
	stopCode
	stopHeading
)

// descendProse collects prose nested in n, through nested wrappers, in
// document order until a code block or a section heading is reached.
func descendProse(n *html.Node, texts *[]string) stopReason {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch {
		case isHeading(c):
			return stopHeading
		case isCodeBlock(c):
			return stopCode
		case isProse(c):
			if containsCodeBlock(c) {
				return stopCode
			}
			*texts = append(*texts, nodeText(c))
		case isWrapper(c):
			if r := descendProse(c, texts); r != stopNone {
				return r
			}
		case containsCodeBlock(c):
			return stopCode
		}
	}
	return stopNone
}

// proseBefore walks backward in document order from block collecting
// outermost prose until a section heading or a main/article boundary, then
// restores document order.
func proseBefore(block *html.Node) []string {
	var texts []string
	for n := previousInDocument(block); n != nil; n = previousInDocument(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if isHeading(n) || isBoundary(n) {
			break
		}
		if isProse(n) && !insideProse(n) && !containsCodeBlock(n) {
			texts = append(texts, nodeText(n))
		}
	}
	for i, j := 0, len(texts)-1; i < j; i, j = i+1, j-1 {
		texts[i], texts[j] = texts[j], texts[i]
	}
	return texts
}

func insideProse(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isProse(p) {
			return true
		}
	}
	return false
}

// joinProse drops empty blocks, collapses adjacent duplicates and joins the
// rest with blank lines.
func joinProse(texts []string) string {
	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		if t == "" {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == t {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, "\n\n")
}

// firstText returns the normalized text of the first match of selector.
func firstText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel.Nodes[0])
}
