package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/crawl"
	"github.com/fwojciec/docsnip/fs"
	"github.com/fwojciec/docsnip/goquery"
	snhttp "github.com/fwojciec/docsnip/http"
	"github.com/fwojciec/docsnip/rod"
	snslog "github.com/fwojciec/docsnip/slog"
	"github.com/fwojciec/docsnip/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when --db is given.
	DB *sqlite.DB

	// Renderer replaces the browser or HTTP renderer when set.
	// Used for end-to-end testing.
	Renderer docsnip.Renderer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsnip"),
		kong.Description("Extract code examples from rendered documentation pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsnip --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set DOCSNIP_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Store = sqlite.NewPageService(m.DB)
	}

	deps.Examples = goquery.NewExampleExtractor()
	deps.Anchors = goquery.NewLinkExtractor()

	// Wire command-specific dependencies based on command
	if cmd != "examples" && cmd != "extract" {
		renderer, err := m.newRenderer(&cli.Globals, stderr)
		if err != nil {
			return err
		}
		defer renderer.Close()

		if cli.Sanitize {
			renderer = goquery.NewSanitizingRenderer(renderer)
		}
		deps.Renderer = snslog.NewLoggingRenderer(renderer, deps.Logger)

		var sidebarOpts []goquery.SidebarOption
		if cli.SidebarSelector != "" {
			sidebarOpts = append(sidebarOpts, goquery.WithSidebarSelector(cli.SidebarSelector))
		}
		deps.Pages = snslog.NewLoggingPageExtractor(goquery.NewPageExtractor(), deps.Logger)
		deps.Sidebar = goquery.NewSidebarExtractor(sidebarOpts...)
		deps.Detector = goquery.NewDetector()
		deps.Links = fs.NewLinkLoader()
		deps.Limiter = crawl.NewDomainLimiter(cli.Rate, crawl.WithBurst(cli.Burst))
	}

	return kongCtx.Run(deps)
}

// newRenderer returns the renderer selected by the global flags.
func (m *Main) newRenderer(g *Globals, stderr io.Writer) (docsnip.Renderer, error) {
	if m.Renderer != nil {
		return m.Renderer, nil
	}

	if g.Static {
		opts := []snhttp.Option{snhttp.WithTimeout(g.Timeout)}
		if g.UserAgent != "" {
			opts = append(opts, snhttp.WithUserAgent(g.UserAgent))
		}
		return snhttp.NewRenderer(opts...), nil
	}

	managerOpts := []rod.ManagerOption{rod.WithMaxRenders(g.RecycleAfter)}
	if g.Browser != "" {
		managerOpts = append(managerOpts, rod.WithBrowserBin(g.Browser))
	}
	opts := []rod.Option{
		rod.WithTimeout(g.Timeout),
		rod.WithReadySelector(g.ReadySelector, rod.DefaultReadyTimeout),
		rod.WithPostRenderDelay(g.PostRenderDelay),
		rod.WithManagerOptions(managerOpts...),
	}
	if g.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(g.UserAgent))
	}
	renderer, err := rod.NewRenderer(opts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static for server-rendered sites")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return renderer, nil
}
