package docsnip

// DefaultExampleTitle is used when a code block has neither a section
// heading nor a page title.
const DefaultExampleTitle = "Example"

// DefaultLanguage is used when a code block carries no language annotation.
const DefaultLanguage = "text"

// CodeExample is a code block together with the section heading and prose
// that describe it.
type CodeExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Code        string `json:"code"`
}

// HeadingLevel distinguishes the two recognized section heading levels.
type HeadingLevel int

// Recognized heading levels. Other heading levels are not section headings.
const (
	HeadingNone  HeadingLevel = 0
	HeadingMajor HeadingLevel = 2
	HeadingMinor HeadingLevel = 3
)

// ExampleExtractor associates every code block in a rendered page with its
// section heading and descriptive prose.
type ExampleExtractor interface {
	// ExtractExamples returns the examples in document order.
	// Extraction never fails; missing headings and annotations degrade
	// to documented fallbacks.
	ExtractExamples(html string) []CodeExample
}
