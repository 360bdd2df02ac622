package crawl_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/crawl"
	"github.com/fwojciec/docsnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sidebarOf(links ...docsnip.SidebarLink) *mock.SidebarExtractor {
	return &mock.SidebarExtractor{
		ExtractSidebarFn: func(_ string) []docsnip.SidebarLink {
			return links
		},
	}
}

func TestSiteCrawler_Discover(t *testing.T) {
	t.Parallel()

	t.Run("returns start URL followed by resolved sidebar links", func(t *testing.T) {
		t.Parallel()

		// Given: a sidebar with relative, duplicate and non-HTTP entries
		c := &crawl.SiteCrawler{
			Renderer: echoRenderer(),
			Sidebar: sidebarOf(
				docsnip.SidebarLink{Title: "Intro", Href: "/docs/intro"},
				docsnip.SidebarLink{Title: "Install", Href: "install#npm"},
				docsnip.SidebarLink{Title: "Install (again)", Href: "install"},
				docsnip.SidebarLink{Title: "Home", Href: "/docs/intro/"},
				docsnip.SidebarLink{Title: "Mail", Href: "mailto:docs@x.com"},
				docsnip.SidebarLink{Title: "Self", Href: "/docs/intro#top"},
			),
			Batch: &crawl.Batch{},
		}

		// When: discovering from the intro page
		urls, start, err := c.Discover(context.Background(), "https://x.com/docs/intro")

		// Then: links are absolute, deduplicated and ordered after the start URL
		require.NoError(t, err)
		assert.Equal(t, "https://x.com/docs/intro", start.URL)
		assert.Equal(t, []string{
			"https://x.com/docs/intro",
			"https://x.com/docs/install",
			"https://x.com/docs/intro/",
		}, urls)
	})

	t.Run("applies the URL filter to sidebar links only", func(t *testing.T) {
		t.Parallel()

		filter, err := docsnip.NewURLFilter(nil, []string{`/blog/`})
		require.NoError(t, err)
		c := &crawl.SiteCrawler{
			Renderer: echoRenderer(),
			Sidebar: sidebarOf(
				docsnip.SidebarLink{Title: "Post", Href: "/blog/post"},
				docsnip.SidebarLink{Title: "API", Href: "/docs/api"},
			),
			Batch:  &crawl.Batch{},
			Filter: filter,
		}

		urls, _, err := c.Discover(context.Background(), "https://x.com/blog/start")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x.com/blog/start", "https://x.com/docs/api"}, urls)
	})

	t.Run("caps the number of pages", func(t *testing.T) {
		t.Parallel()

		c := &crawl.SiteCrawler{
			Renderer: echoRenderer(),
			Sidebar: sidebarOf(
				docsnip.SidebarLink{Href: "/a"},
				docsnip.SidebarLink{Href: "/b"},
				docsnip.SidebarLink{Href: "/c"},
			),
			Batch:    &crawl.Batch{},
			MaxPages: 2,
		}

		urls, _, err := c.Discover(context.Background(), "https://x.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x.com/", "https://x.com/a"}, urls)
	})

	t.Run("reports render failure of the start page", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (*docsnip.RenderedDocument, error) {
				return nil, docsnip.Errorf(docsnip.ETIMEOUT, "render timed out")
			},
		}
		c := &crawl.SiteCrawler{
			Renderer: renderer,
			Sidebar:  sidebarOf(),
			Batch:    &crawl.Batch{RetryDelays: []time.Duration{}},
		}

		_, _, err := c.Discover(context.Background(), "https://x.com/docs")

		var serr *docsnip.StageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, docsnip.StageRender, serr.Stage)
		assert.Equal(t, docsnip.ETIMEOUT, docsnip.ErrorCode(err))
	})

	t.Run("rejects a relative start URL", func(t *testing.T) {
		t.Parallel()

		c := &crawl.SiteCrawler{Renderer: echoRenderer(), Sidebar: sidebarOf(), Batch: &crawl.Batch{}}

		_, _, err := c.Discover(context.Background(), "docs/intro")

		assert.Equal(t, docsnip.EINVALID, docsnip.ErrorCode(err))
	})

	t.Run("logs the discovered page count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := &crawl.SiteCrawler{
			Renderer: echoRenderer(),
			Sidebar:  sidebarOf(docsnip.SidebarLink{Href: "/a"}),
			Batch:    &crawl.Batch{},
			Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
		}

		_, _, err := c.Discover(context.Background(), "https://x.com/")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "pages=2")
	})
}

func TestSiteCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("renders the start page once and processes the sidebar", func(t *testing.T) {
		t.Parallel()

		// Given: a renderer counting renders per URL
		var mu sync.Mutex
		renders := map[string]int{}
		renderer := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) (*docsnip.RenderedDocument, error) {
				mu.Lock()
				renders[url]++
				mu.Unlock()
				return &docsnip.RenderedDocument{URL: url, HTML: url}, nil
			},
		}
		c := &crawl.SiteCrawler{
			Renderer: renderer,
			Sidebar: sidebarOf(
				docsnip.SidebarLink{Href: "/docs/a"},
				docsnip.SidebarLink{Href: "/docs/b"},
			),
			Batch: &crawl.Batch{Renderer: renderer, Pages: titlePages()},
		}

		// When: crawling from the docs root
		result, failures, err := c.Crawl(context.Background(), "https://x.com/docs/", nil)

		// Then: every page is processed once, start page first
		require.NoError(t, err)
		assert.Empty(t, failures)
		require.Len(t, result.Pages, 3)
		assert.Equal(t, "https://x.com/docs/", result.Pages[0].URL)
		assert.Equal(t, "https://x.com/docs/a", result.Pages[1].URL)
		assert.Equal(t, "https://x.com/docs/b", result.Pages[2].URL)
		assert.Equal(t, map[string]int{
			"https://x.com/docs/":  1,
			"https://x.com/docs/a": 1,
			"https://x.com/docs/b": 1,
		}, renders)
	})
}
