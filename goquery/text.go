package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// normalizeSpace collapses runs of whitespace into single spaces and trims
// the result.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// permalinkClasses mark heading anchors that only carry a symbol such as
// "#" or "¶".
var permalinkClasses = []string{"hash-link", "headerlink", "header-anchor"}

// nodeText returns the whitespace-normalized text of n. Block-level
// children are separated by a space so list items do not run together.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if isPermalink(n) {
				return
			}
			if isBlockElement(n) || n.DataAtom == atom.Br {
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n) {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return normalizeSpace(b.String())
}

// codeText returns the verbatim text of a code node. Line breaks rendered
// as <br> elements become newlines.
func codeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			b.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func isPermalink(n *html.Node) bool {
	if n.DataAtom != atom.A {
		return false
	}
	for _, class := range permalinkClasses {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}

func isBlockElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Dl, atom.Dt, atom.Dd,
		atom.Section, atom.Article, atom.Blockquote, atom.Table, atom.Tr, atom.Td, atom.Th,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre:
		return true
	}
	return false
}
