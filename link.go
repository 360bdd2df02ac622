package docsnip

import (
	"net/url"
	"strings"
)

// SidebarLink is a navigation entry from a documentation sidebar.
type SidebarLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// LinkExtractor extracts navigable links from rendered HTML.
type LinkExtractor interface {
	// ExtractLinks returns unique absolute URLs in document order.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// SidebarExtractor extracts the entries of a documentation sidebar.
type SidebarExtractor interface {
	// ExtractSidebar returns the sidebar entries in document order.
	// Hrefs are returned as found; resolving them is the caller's job.
	// A page without a sidebar yields an empty slice.
	ExtractSidebar(html string) []SidebarLink
}

// Framework identifies a documentation framework.
type Framework string

// Supported documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from HTML.
type FrameworkDetector interface {
	// Detect analyzes HTML and returns the identified framework.
	// Returns FrameworkUnknown if the framework cannot be determined.
	Detect(html string) Framework
}

// ResolveHref turns an href into an absolute URL without fragment.
// Returns an empty string for hrefs that do not point to another document:
// empty, fragment-only, non-HTTP schemes, or unparseable values.
// Protocol-relative hrefs are given the https scheme.
func ResolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme == "" || resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

// ParseBaseURL parses an absolute base URL for link resolution.
func ParseBaseURL(baseURL string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base URL: %v", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, Errorf(EINVALID, "base URL must be absolute: %q", baseURL)
	}
	return base, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
