package mock

import (
	"context"

	"github.com/fwojciec/docsnip"
)

var _ docsnip.PageService = (*PageService)(nil)

// PageService is a mock implementation of docsnip.PageService.
type PageService struct {
	SavePageFn      func(ctx context.Context, page *docsnip.PageExtraction) error
	FindPageByURLFn func(ctx context.Context, url string) (*docsnip.PageExtraction, error)
	FindExamplesFn  func(ctx context.Context, filter docsnip.ExampleFilter) ([]*docsnip.StoredExample, error)
}

func (s *PageService) SavePage(ctx context.Context, page *docsnip.PageExtraction) error {
	return s.SavePageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docsnip.PageExtraction, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindExamples(ctx context.Context, filter docsnip.ExampleFilter) ([]*docsnip.StoredExample, error) {
	return s.FindExamplesFn(ctx, filter)
}
