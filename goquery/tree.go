package goquery

import "golang.org/x/net/html"

// maxAscent bounds how many container levels nearestPreceding climbs.
const maxAscent = 64

// nearestPreceding returns the closest preceding sibling of start matching
// match. When a container's siblings are exhausted the search moves up to
// the container's parent and continues with the parent's preceding
// siblings. Siblings are tested themselves; their descendants are not.
// Returns nil when the document root is reached or after maxAscent levels.
func nearestPreceding(start *html.Node, match func(*html.Node) bool, maxAscent int) *html.Node {
	container := start
	for depth := 0; container != nil && depth <= maxAscent; depth++ {
		for node := container.PrevSibling; node != nil; node = node.PrevSibling {
			if match(node) {
				return node
			}
		}
		container = container.Parent
	}
	return nil
}

// previousInDocument returns the node before n in document order, so that
// repeated calls visit everything before n in reverse: the previous
// sibling's deepest last descendant first, ancestors after their
// earlier children.
func previousInDocument(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	n = n.PrevSibling
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

// isAncestor reports whether a is a proper ancestor of n.
func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
