package goquery

import (
	"strings"

	"github.com/fwojciec/docsnip"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// languagePrefix marks the class token that carries a code block's language.
const languagePrefix = "language-"

// headingLevel returns the section level of n, or HeadingNone when n is not
// a recognized section heading. Only h2 and h3 count.
func headingLevel(n *html.Node) docsnip.HeadingLevel {
	if n == nil || n.Type != html.ElementNode {
		return docsnip.HeadingNone
	}
	switch n.DataAtom {
	case atom.H2:
		return docsnip.HeadingMajor
	case atom.H3:
		return docsnip.HeadingMinor
	}
	return docsnip.HeadingNone
}

func isHeading(n *html.Node) bool {
	return headingLevel(n) != docsnip.HeadingNone
}

// isCodeBlock reports whether n is a preformatted block or a code node
// inside one.
func isCodeBlock(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == atom.Pre {
		return true
	}
	return n.DataAtom == atom.Code && closest(n.Parent, atom.Pre) != nil
}

// containsCodeBlock reports whether n is or contains a code block.
func containsCodeBlock(n *html.Node) bool {
	if isCodeBlock(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsCodeBlock(c) {
			return true
		}
	}
	return false
}

// isProse reports whether n is a paragraph or list.
func isProse(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.P, atom.Ul, atom.Ol:
		return true
	}
	return false
}

// isWrapper reports whether n is a layout container whose nested prose
// belongs to the surrounding section.
func isWrapper(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Div, atom.Section, atom.Article:
		return true
	}
	return false
}

// isBoundary reports whether n is a top-level content container that
// bounds the backward description walk.
func isBoundary(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return n.DataAtom == atom.Main || n.DataAtom == atom.Article
}

// languageOf returns the language annotated on a code node, falling back
// to its pre wrapper and then to DefaultLanguage.
func languageOf(code, pre *html.Node) string {
	for _, n := range []*html.Node{code, pre} {
		if n == nil {
			continue
		}
		for _, class := range classes(n) {
			if lang, ok := strings.CutPrefix(class, languagePrefix); ok && lang != "" {
				return lang
			}
		}
	}
	return docsnip.DefaultLanguage
}

func classes(n *html.Node) []string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}

func hasClass(n *html.Node, name string) bool {
	for _, class := range classes(n) {
		if class == name {
			return true
		}
	}
	return false
}

// closest returns n or its nearest ancestor with the given tag.
func closest(n *html.Node, a atom.Atom) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
	}
	return nil
}
