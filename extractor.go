package forgeads

// Extractor extracts structured content from raw HTML.
type Extractor interface {
	// Extract never fails for malformed or empty HTML; insufficient input
	// is reported by the result's IsSufficient.
	Extract(html string) (*ExtractedContent, error)
}

// PageExtractor extracts a fetched page, resolving relative image URLs
// against pageURL. It returns EINSUFFICIENT when the page has no title,
// headings or paragraphs.
type PageExtractor interface {
	ExtractPage(html, pageURL string) (*ExtractedContent, error)
}
