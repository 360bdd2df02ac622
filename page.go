package docsnip

import "context"

// PageExtraction is everything extracted from a single documentation page.
type PageExtraction struct {
	URL       string        `json:"url"`
	PageTitle string        `json:"page_title"`
	Links     []string      `json:"links"`
	Examples  []CodeExample `json:"examples"`
}

// Summary returns the page without its links, as stored in batch output.
func (p *PageExtraction) Summary() PageSummary {
	return PageSummary{
		URL:       p.URL,
		PageTitle: p.PageTitle,
		Examples:  p.Examples,
	}
}

// PageSummary is a page entry of a batch result.
type PageSummary struct {
	URL       string        `json:"url"`
	PageTitle string        `json:"page_title"`
	Examples  []CodeExample `json:"examples"`
}

// BatchResult is the combined output of a batch run.
type BatchResult struct {
	Pages []PageSummary `json:"pages"`
}

// PageFailure records a page that could not be processed in a batch.
type PageFailure struct {
	URL   string
	Stage Stage
	Err   error
}

// PageExtractor composes title, link and example extraction for a page.
type PageExtractor interface {
	// ExtractPage extracts a rendered document. An error is returned only
	// when the document URL cannot serve as a base URL.
	ExtractPage(doc *RenderedDocument) (*PageExtraction, error)
}

// BatchProgress reports progress during a batch run.
type BatchProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// BatchProgressFunc is called as pages complete.
type BatchProgressFunc func(BatchProgress)

// PageService persists extracted pages.
type PageService interface {
	// SavePage stores the page, replacing any page previously saved
	// under the same URL.
	SavePage(ctx context.Context, page *PageExtraction) error

	// FindPageByURL retrieves a saved page.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByURL(ctx context.Context, url string) (*PageExtraction, error)

	// FindExamples retrieves examples matching the filter.
	FindExamples(ctx context.Context, filter ExampleFilter) ([]*StoredExample, error)
}

// StoredExample is a persisted example with its page reference.
type StoredExample struct {
	CodeExample
	PageURL  string `json:"page_url"`
	Position int    `json:"position"`
	CodeHash string `json:"code_hash"`
}

// ExampleFilter represents a filter for FindExamples.
type ExampleFilter struct {
	PageURL  *string `json:"page_url"`
	Language *string `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
