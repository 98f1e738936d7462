package forgeads

import "context"

// Fetcher retrieves the HTML of a landing page.
type Fetcher interface {
	// Fetch returns the page HTML. Failures carry EINVALID for bad URLs
	// and EUNREACHABLE otherwise.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
