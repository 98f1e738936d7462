// Package goquery extracts structured content from HTML using a DOM parser.
package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/forgeads/forgeads"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ forgeads.Extractor     = (*Extractor)(nil)
	_ forgeads.PageExtractor = (*Extractor)(nil)
)

const (
	minHeadingLength   = 4
	minBulletLength    = 6
	minCTALength       = 3
	maxCTALength       = 30
	minParagraphLength = 21
)

// Extractor extracts landing page content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract extracts content from html. It never fails: malformed or empty
// HTML yields insufficient content.
func (e *Extractor) Extract(htmlText string) (*forgeads.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return forgeads.NewExtractedContent(empty()), nil
	}
	return forgeads.NewExtractedContent(extract(doc)), nil
}

// ExtractPage extracts a fetched page. Paragraphs and images are
// collected in addition to the Extract fields, with image URLs resolved
// against pageURL.
//
// Returns EINSUFFICIENT when the page has no title, headings or paragraphs.
func (e *Extractor) ExtractPage(htmlText, pageURL string) (*forgeads.ExtractedContent, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "URL inválida. Use http:// ou https://")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, insufficientPage()
	}

	c := extract(doc)
	doc.Find("script, style, noscript, iframe").Remove()
	c.Paragraphs = paragraphs(doc)
	c.Images = images(doc, base)

	if c.Title == "" && len(c.Headings) == 0 && len(c.Paragraphs) == 0 {
		return nil, insufficientPage()
	}
	return forgeads.NewExtractedContent(c), nil
}

func insufficientPage() error {
	return forgeads.Errorf(forgeads.EINSUFFICIENT,
		"Não foi possível extrair informações suficientes da página. Verifique se a URL está correta e acessível.")
}

func empty() forgeads.ExtractedContent {
	return forgeads.ExtractedContent{
		MetaTags: map[string]string{},
		Headings: []string{},
		Bullets:  []string{},
		Prices:   []string{},
		CTAs:     []string{},
	}
}

func extract(doc *goquery.Document) forgeads.ExtractedContent {
	c := empty()
	c.Title = title(doc)
	c.Description = description(doc)
	c.MetaTags = metaTags(doc)
	c.Headings = headings(doc)
	c.Bullets = bullets(doc)
	c.CTAs = ctas(doc)

	text := bodyText(doc)
	c.Prices = forgeads.FindPrices(text)
	c.FullText = forgeads.Truncate(text, forgeads.MaxFullTextLength)
	return c
}

// title returns og:title, then <title>, then the first <h1>.
func title(doc *goquery.Document) string {
	if s := metaContent(doc, `meta[property="og:title"]`); s != "" {
		return s
	}
	if s := forgeads.CleanText(doc.Find("title").First().Text()); s != "" {
		return s
	}
	return forgeads.CleanText(doc.Find("h1").First().Text())
}

// description returns og:description, then the meta description.
func description(doc *goquery.Document) string {
	if s := metaContent(doc, `meta[property="og:description"]`); s != "" {
		return s
	}
	return metaContent(doc, `meta[name="description"]`)
}

func metaContent(doc *goquery.Document, selector string) string {
	var content string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content = forgeads.CleanText(sel.AttrOr("content", ""))
		return content == ""
	})
	return content
}

func metaTags(doc *goquery.Document) map[string]string {
	tags := make(map[string]string)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key := sel.AttrOr("name", "")
		if key == "" {
			key = sel.AttrOr("property", "")
		}
		content := forgeads.CleanText(sel.AttrOr("content", ""))
		if key == "" || content == "" {
			return
		}
		tags[key] = content
	})
	return tags
}

func headings(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if s := forgeads.CleanText(sel.Text()); utf8.RuneCountInString(s) >= minHeadingLength {
			out = append(out, s)
		}
	})
	return out
}

func bullets(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if s := forgeads.CleanText(sel.Text()); utf8.RuneCountInString(s) >= minBulletLength {
			out = append(out, s)
		}
		return len(out) < forgeads.MaxBullets
	})
	return out
}

func ctas(doc *goquery.Document) []string {
	var out []string
	doc.Find("button, a").Each(func(_ int, sel *goquery.Selection) {
		s := forgeads.CleanText(sel.Text())
		if n := utf8.RuneCountInString(s); n < minCTALength || n > maxCTALength {
			return
		}
		if forgeads.IsCallToAction(s) {
			out = append(out, s)
		}
	})
	return forgeads.Dedupe(out)
}

func paragraphs(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if s := forgeads.CleanText(sel.Text()); utf8.RuneCountInString(s) >= minParagraphLength {
			out = append(out, s)
		}
		return len(out) < forgeads.MaxParagraphs
	})
	return out
}

func images(doc *goquery.Document, base *url.URL) []string {
	out := []string{}
	seen := make(map[string]bool)
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(sel.AttrOr("data-src", ""))
		}
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return true
		}
		if resolved := resolveURL(base, src); resolved != "" && !seen[resolved] {
			seen[resolved] = true
			out = append(out, resolved)
		}
		return len(out) < forgeads.MaxImages
	})
	return out
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// bodyText returns the document text with script and style contents
// removed and whitespace collapsed. Text nodes are separated by spaces so
// adjacent elements never merge their words.
func bodyText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		case html.CommentNode:
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return forgeads.CleanText(b.String())
}
