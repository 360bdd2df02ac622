// Package fs reads link lists from and writes extraction results to the
// local filesystem.
package fs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docsnip"
)

// Ensure LinkLoader implements docsnip.LinkLoader at compile time.
var _ docsnip.LinkLoader = (*LinkLoader)(nil)

// LinkLoader reads the list of pages to process from a file.
//
// JSON files hold either an array of entries or an object whose "links"
// field is that array. An entry is a URL string or an object carrying the
// URL in "href" or "url". Files ending in .xml are read as sitemaps.
type LinkLoader struct{}

// NewLinkLoader creates a new LinkLoader.
func NewLinkLoader() *LinkLoader {
	return &LinkLoader{}
}

// LoadLinks returns the absolute URLs listed in the file at path, in file
// order. Relative entries are resolved against baseURL; entries that do
// not resolve to an absolute URL are skipped.
func (l *LinkLoader) LoadLinks(path string, baseURL string) ([]string, error) {
	base := &url.URL{}
	if baseURL != "" {
		var err error
		if base, err = docsnip.ParseBaseURL(baseURL); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docsnip.Errorf(docsnip.ENOTFOUND, "links file %s not found", path)
		}
		return nil, fmt.Errorf("reading links file: %w", err)
	}

	var entries []string
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		entries, err = parseSitemap(data)
	} else {
		entries, err = parseLinksJSON(data)
	}
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(entries))
	for _, entry := range entries {
		if link := docsnip.ResolveHref(base, entry); link != "" {
			links = append(links, link)
		}
	}
	if len(links) == 0 {
		return nil, docsnip.Errorf(docsnip.EINVALID, "no usable links in %s", path)
	}
	return links, nil
}

// parseLinksJSON returns the raw entries of a JSON links document.
func parseLinksJSON(data []byte) ([]string, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "links file is not valid JSON: %v", err)
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		raw, ok := v["links"]
		if !ok {
			return nil, nil
		}
		if items, ok = raw.([]any); !ok {
			return nil, docsnip.Errorf(docsnip.EINVALID, `"links" must be a list of URLs`)
		}
	default:
		return nil, docsnip.Errorf(docsnip.EINVALID, `links file must contain a list or an object with a "links" list`)
	}

	entries := make([]string, 0, len(items))
	for _, item := range items {
		if s := entryURL(item); s != "" {
			entries = append(entries, s)
		}
	}
	return entries, nil
}

// entryURL returns the trimmed URL of a single entry, or "" when the
// entry carries none.
func entryURL(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, key := range []string{"href", "url"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// parseSitemap returns the <loc> values of a <urlset> sitemap.
func parseSitemap(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docsnip.Errorf(docsnip.EINVALID, "empty sitemap XML")
	}
	if root.Tag == "sitemapindex" {
		return nil, docsnip.Errorf(docsnip.EINVALID, "sitemap index files are not supported; pass one of its sitemaps")
	}

	var entries []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			entries = append(entries, u)
		}
	}
	return entries, nil
}
