package crawl

import (
	"sync"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/bloom"
)

// Compile-time interface verification.
var _ docsnip.URLFrontier = (*Frontier)(nil)

// DefaultFalsePositiveRate is the Bloom filter false positive rate used by
// the site crawler. A false positive drops a page, so it is kept low.
const DefaultFalsePositiveRate = 1e-6

// Frontier is an in-memory FIFO URL queue with Bloom filter deduplication.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push appends a URL to the queue.
// Returns false if the URL has already been seen.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the oldest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued, whether or not it has
// been popped since.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}

// Drain pops every queued URL in order.
func Drain(f docsnip.URLFrontier) []string {
	urls := make([]string, 0, f.Len())
	for {
		url, ok := f.Pop()
		if !ok {
			return urls
		}
		urls = append(urls, url)
	}
}
