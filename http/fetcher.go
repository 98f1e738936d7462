// Package http provides an HTTP-based implementation of forgeads.Fetcher
// for landing pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/forgeads/forgeads"
	"golang.org/x/net/html/charset"
)

// Fetch defaults.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxRedirects = 5

	// DefaultMaxBodySize bounds the bytes read from a page.
	DefaultMaxBodySize = 10 << 20
)

// Browser headers sent with every request. Many landing pages block
// clients that do not look like a desktop browser.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader          = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	DefaultAcceptLanguage = "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7"
)

// Ensure Fetcher implements forgeads.Fetcher at compile time.
var _ forgeads.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	maxBodySize  int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the number of redirects followed before failing.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxBodySize:  DefaultMaxBodySize,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := forgeads.ValidateURL(url); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", forgeads.Errorf(forgeads.EINVALID, "URL inválida. Use http:// ou https://")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", DefaultAcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", forgeads.Errorf(forgeads.EUNREACHABLE, "Acesso negado pela página. Ela pode estar protegida contra scraping.")
	case resp.StatusCode == http.StatusNotFound:
		return "", forgeads.Errorf(forgeads.EUNREACHABLE, "Página não encontrada (404).")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", forgeads.Errorf(forgeads.EUNREACHABLE, "Erro ao acessar a página: HTTP %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, f.maxBodySize)
	if r, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = r
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", classify(err)
	}

	return string(data), nil
}

// classify maps transport errors to user-facing EUNREACHABLE errors.
func classify(err error) error {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		return forgeads.Errorf(forgeads.EUNREACHABLE, "URL não encontrada. Verifique se o endereço está correto.")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return forgeads.Errorf(forgeads.EUNREACHABLE, "Tempo limite excedido ao acessar a página.")
	default:
		return forgeads.Errorf(forgeads.EUNREACHABLE, "Erro ao acessar a página: %v", err)
	}
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
