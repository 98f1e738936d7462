package mock

import "github.com/forgeads/forgeads"

var (
	_ forgeads.Extractor     = (*Extractor)(nil)
	_ forgeads.PageExtractor = (*PageExtractor)(nil)
)

// Extractor is a mock implementation of forgeads.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*forgeads.ExtractedContent, error)
}

func (e *Extractor) Extract(html string) (*forgeads.ExtractedContent, error) {
	return e.ExtractFn(html)
}

// PageExtractor is a mock implementation of forgeads.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html, pageURL string) (*forgeads.ExtractedContent, error)
}

func (e *PageExtractor) ExtractPage(html, pageURL string) (*forgeads.ExtractedContent, error) {
	return e.ExtractPageFn(html, pageURL)
}
