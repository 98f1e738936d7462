// Package rod fetches JavaScript rendered landing pages with headless
// Chrome.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/forgeads/forgeads"
	forgeadshttp "github.com/forgeads/forgeads/http"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements forgeads.Fetcher at compile time.
var _ forgeads.Fetcher = (*Fetcher)(nil)

// DefaultSettleTime is how long the page must be idle after load before
// its HTML is read.
const DefaultSettleTime = 500 * time.Millisecond

// Fetcher retrieves rendered HTML using a shared Browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser    *Browser
	userAgent  string
	settleTime time.Duration
	timeout    time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithSettleTime sets the idle time waited for after page load.
func WithSettleTime(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settleTime = d
	}
}

// WithTimeout bounds each fetch, from page creation to reading the HTML.
// Defaults to forgeadshttp.DefaultFetchTimeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher rendering pages in browser. The Fetcher
// owns browser and closes it on Close.
func NewFetcher(browser *Browser, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		browser:    browser,
		userAgent:  forgeadshttp.DefaultUserAgent,
		settleTime: DefaultSettleTime,
		timeout:    forgeadshttp.DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to rawURL and returns the rendered HTML.
// Cancellation of ctx is returned unchanged; navigation failures and
// the fetch timeout are EUNREACHABLE.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := forgeads.ValidateURL(rawURL); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.browser.acquire()
	if err != nil {
		return "", err
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	fetchCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	page = page.Context(fetchCtx)
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: forgeadshttp.DefaultAcceptLanguage,
	}); err != nil {
		return "", unreachable(ctx, fetchCtx, err)
	}
	if err := page.Navigate(rawURL); err != nil {
		return "", unreachable(ctx, fetchCtx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", unreachable(ctx, fetchCtx, err)
	}
	if f.settleTime > 0 {
		if err := page.WaitIdle(f.settleTime); err != nil {
			return "", unreachable(ctx, fetchCtx, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", unreachable(ctx, fetchCtx, err)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}

// unreachable classifies a navigation failure. parent is the caller's
// context and fetchCtx the one bounded by the fetch timeout.
func unreachable(parent, fetchCtx context.Context, err error) error {
	if ctxErr := parent.Err(); ctxErr != nil {
		return ctxErr
	}
	if fetchCtx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return forgeads.Errorf(forgeads.EUNREACHABLE, "Tempo limite excedido ao acessar a página.")
	}
	return forgeads.Errorf(forgeads.EUNREACHABLE, "Erro ao acessar a página: %v", err)
}
