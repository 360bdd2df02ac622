package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docsnip"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Renderer docsnip.Renderer
	Pages    docsnip.PageExtractor
	Examples docsnip.ExampleExtractor
	Anchors  docsnip.LinkExtractor
	Sidebar  docsnip.SidebarExtractor
	Detector docsnip.FrameworkDetector
	Links    docsnip.LinkLoader
	Limiter  docsnip.DomainLimiter

	// Store is nil unless a database path was given.
	Store docsnip.PageService

	// RetryDelays overrides the render retry backoff when non-nil.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Page     PageCmd     `cmd:"" help:"Extract title, links and code examples from one page"`
	Batch    BatchCmd    `cmd:"" help:"Extract code examples from every page in a links file"`
	Sidebar  SidebarCmd  `cmd:"" help:"Extract the sidebar navigation of a page"`
	Render   RenderCmd   `cmd:"" help:"Save the rendered HTML of a page"`
	Extract  ExtractCmd  `cmd:"" help:"Extract code examples or links from a saved HTML file"`
	Crawl    CrawlCmd    `cmd:"" help:"Extract code examples from a page and every page in its sidebar"`
	Examples ExamplesCmd `cmd:"" help:"List code examples saved in the database"`
}

// Globals are flags shared by every command.
type Globals struct {
	Timeout         time.Duration `default:"60s" env:"DOCSNIP_TIMEOUT" help:"Render timeout per page"`
	ReadySelector   string        `default:"pre code" env:"DOCSNIP_READY_SELECTOR" help:"CSS selector that marks a page as rendered"`
	UserAgent       string        `env:"DOCSNIP_USER_AGENT" help:"User-Agent for page requests"`
	PostRenderDelay time.Duration `env:"DOCSNIP_POST_RENDER_DELAY" help:"Extra wait after the page is ready"`
	SidebarSelector string        `env:"DOCSNIP_SIDEBAR_SELECTOR" help:"CSS selector of the sidebar container (default: chosen by framework)"`
	Browser         string        `env:"DOCSNIP_BROWSER" help:"Chrome or Chromium binary (default: found or downloaded by rod)"`
	RecycleAfter    int           `default:"75" help:"Renders after which the browser is restarted"`
	Static          bool          `env:"DOCSNIP_STATIC" help:"Fetch pages over plain HTTP without a browser"`
	Sanitize        bool          `default:"true" negatable:"" help:"Strip script, style and noscript elements from rendered HTML"`
	Rate            float64       `default:"1" env:"DOCSNIP_RATE" help:"Maximum renders per second per host (0 disables the limit)"`
	Burst           int           `default:"1" help:"Renders per host allowed back to back before the rate applies"`
	DB              string        `env:"DOCSNIP_DB" help:"SQLite database to save extracted pages to"`
	Verbose         bool          `short:"v" help:"Log debug output to stderr"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	URL    string `arg:"" help:"Documentation page URL"`
	Output string `short:"o" default:"out/page.json" help:"Output JSON path"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	LinksFile   string `arg:"" type:"path" help:"JSON list of links, sidebar JSON, or sitemap XML"`
	Output      string `short:"o" default:"out/all_pages.json" help:"Output JSON path"`
	BaseURL     string `help:"Base URL for relative links in the links file"`
	Concurrency int    `short:"c" default:"1" help:"Pages rendered in parallel"`
	FailFast    bool   `help:"Stop at the first page that fails"`
}

// SidebarCmd is the "sidebar" subcommand.
type SidebarCmd struct {
	URL    string `arg:"" help:"Documentation page URL"`
	Output string `short:"o" default:"out/sidebar.json" help:"Output JSON path"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	URL    string `arg:"" help:"Documentation page URL"`
	Output string `short:"o" default:"out/page.html" help:"Output HTML path"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File    string `arg:"" type:"existingfile" help:"HTML file saved by the render command"`
	Output  string `short:"o" default:"out/examples.json" help:"Output JSON path"`
	Links   bool   `help:"Write the page links instead of code examples"`
	BaseURL string `help:"URL the HTML was rendered from (required with --links)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string   `arg:"" help:"Documentation page whose sidebar lists the pages to process"`
	Output      string   `short:"o" default:"out/all_pages.json" help:"Output JSON path"`
	Concurrency int      `short:"c" default:"1" help:"Pages rendered in parallel"`
	FailFast    bool     `help:"Stop at the first page that fails"`
	Include     []string `short:"i" help:"Only process sidebar links matching this regex (repeatable)"`
	Exclude     []string `short:"x" help:"Skip sidebar links matching this regex (repeatable)"`
	MaxPages    int      `help:"Maximum number of pages to process (0 for no limit)"`
}

// ExamplesCmd is the "examples" subcommand.
type ExamplesCmd struct {
	Language string `short:"l" help:"Only examples in this language"`
	URL      string `help:"Only examples from this page"`
	Limit    int    `default:"0" help:"Maximum number of examples (0 for no limit)"`
	Offset   int    `default:"0" help:"Number of examples to skip"`
}
