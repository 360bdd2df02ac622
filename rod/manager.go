package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxRenders is the default number of renders before browser recycling.
const DefaultMaxRenders = 75

// BrowserManager owns the headless Chrome process used for rendering.
// Chrome accumulates memory over time and the baseline never returns to
// initial levels even with proper page cleanup, so the browser is
// relaunched after maxRenders renders once no render is in flight.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	bin        string
	renders    int
	active     int
	maxRenders int
	closed     bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxRenders sets the number of renders after which the browser is
// recycled. Defaults to DefaultMaxRenders.
func WithMaxRenders(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxRenders = n
	}
}

// WithBrowserBin sets the Chrome or Chromium binary to launch.
// By default rod looks up an installed browser or downloads one.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxRenders: DefaultMaxRenders,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Acquire returns the browser for one render. Every successful Acquire
// must be paired with a Release. Returns an error if the manager is closed.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, errClosed
	}
	if bm.renders >= bm.maxRenders && bm.active == 0 {
		bm.recycle()
	}
	bm.active++
	return bm.browser, nil
}

// Release marks a render acquired with Acquire as finished.
func (bm *BrowserManager) Release() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bm.active--
	bm.renders++
}

// Close shuts down the browser and kills the launcher process.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.shutdown()
}

// LauncherPID returns the process ID of the browser launcher.
// It exists for tests that verify process cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch starts a browser with flags that keep background tabs rendering.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown closes the browser and kills the launcher. Must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. If the new launch fails
// the old browser is kept. Must be called with mu held and no render active.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher

	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.renders = 0
}
