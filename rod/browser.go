package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the browser
// is relaunched.
const DefaultMaxPages = 75

// Browser owns a headless Chrome process and relaunches it after a
// number of rendered pages. Chrome memory grows under sustained use and
// never returns to baseline, so a long running server recycles it.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages    atomic.Int64
	maxPages int64
	closed   atomic.Bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithMaxPages sets the number of pages rendered before the browser is
// relaunched.
func WithMaxPages(n int64) BrowserOption {
	return func(b *Browser) {
		b.maxPages = n
	}
}

// NewBrowser launches a headless Chrome. Close must be called when the
// Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the current browser, relaunching it first when the
// page budget is spent, and counts one page against the budget.
func (b *Browser) acquire() (*rod.Browser, error) {
	if b.closed.Load() {
		return nil, fmt.Errorf("browser closed")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pages.Load() >= b.maxPages {
		b.recycle()
	}
	b.pages.Add(1)
	return b.browser, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown()
}

// PID returns the process ID of the browser launcher, or 0.
func (b *Browser) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

func (b *Browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}

// Must be called with mu held.
func (b *Browser) shutdown() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// recycle replaces the running browser. The old one is kept if the new
// launch fails. Must be called with mu held.
func (b *Browser) recycle() {
	oldBrowser, oldLauncher := b.browser, b.launcher
	if err := b.launch(); err != nil {
		b.browser, b.launcher = oldBrowser, oldLauncher
		return
	}
	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	b.pages.Store(0)
}
