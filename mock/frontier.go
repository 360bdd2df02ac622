package mock

import (
	"context"

	"github.com/fwojciec/docsnip"
)

var _ docsnip.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of docsnip.URLFrontier.
type URLFrontier struct {
	PushFn func(url string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
}

func (f *URLFrontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

var _ docsnip.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docsnip.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ docsnip.LinkLoader = (*LinkLoader)(nil)

// LinkLoader is a mock implementation of docsnip.LinkLoader.
type LinkLoader struct {
	LoadLinksFn func(path string, baseURL string) ([]string, error)
}

func (l *LinkLoader) LoadLinks(path string, baseURL string) ([]string, error) {
	return l.LoadLinksFn(path, baseURL)
}
