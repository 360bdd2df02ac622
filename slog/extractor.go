package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docsnip"
)

// Ensure LoggingPageExtractor implements docsnip.PageExtractor.
var _ docsnip.PageExtractor = (*LoggingPageExtractor)(nil)

// LoggingPageExtractor wraps a PageExtractor with debug logging of what
// each page yielded.
type LoggingPageExtractor struct {
	next   docsnip.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next docsnip.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// ExtractPage logs link and example counts and delegates to the wrapped extractor.
func (e *LoggingPageExtractor) ExtractPage(doc *docsnip.RenderedDocument) (page *docsnip.PageExtraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", doc.URL, "duration", time.Since(begin)}
		if page != nil {
			attrs = append(attrs, "title", page.PageTitle, "links", len(page.Links), "examples", len(page.Examples))
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.ExtractPage(doc)
}
