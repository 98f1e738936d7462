package forgeads

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Extraction limits shared by every extraction path.
const (
	MaxFullTextLength   = 5000
	MaxBullets          = 20
	MaxDocumentHeadings = 10
	MaxDocumentCTAs     = 5
	MaxParagraphs       = 20
	MaxImages           = 5

	// MinTitleLength is the title length the structural rule must exceed.
	MinTitleLength = 5
	// MinBodyLength is the full text length the structural rule must exceed
	// when fewer than MinHeadings headings were found.
	MinBodyLength = 300
	MinHeadings   = 2
)

var (
	pricePattern = regexp.MustCompile(`R\$\s?\d{1,3}(?:\.\d{3})*(?:,\d{2})?`)
	ctaPattern   = regexp.MustCompile(`(?i)comprar|assinar|quero|obter|acesso|inscrever|garantir|vaga`)
)

// sufficiency identifies the rule used to derive IsSufficient.
type sufficiency int

const (
	structuralRule sufficiency = iota
	lengthRule
)

// ExtractedContent is the normalized result of extracting a page or a
// document. It is created fresh per request and never mutated after
// construction.
//
// Sufficiency is not a field: it is derived from the other fields by the
// rule fixed at construction time.
type ExtractedContent struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	FullText    string            `json:"fullText"`
	MetaTags    map[string]string `json:"metaTags"`
	Headings    []string          `json:"headings"`
	Bullets     []string          `json:"bullets"`
	Prices      []string          `json:"prices"`
	CTAs        []string          `json:"ctas"`

	// Populated by page extraction only.
	Paragraphs []string `json:"paragraphs,omitempty"`
	Images     []string `json:"images,omitempty"`

	rule      sufficiency
	minLength int
}

// NewExtractedContent returns content judged by the structural rule: a title
// longer than MinTitleLength and either a body longer than MinBodyLength or
// at least MinHeadings headings.
func NewExtractedContent(c ExtractedContent) *ExtractedContent {
	c.rule = structuralRule
	c.minLength = 0
	return &c
}

// NewDocumentContent returns content judged by the document rule: the full
// text must be at least minLength characters long.
func NewDocumentContent(c ExtractedContent, minLength int) *ExtractedContent {
	c.rule = lengthRule
	c.minLength = minLength
	return &c
}

// IsSufficient reports whether c carries enough signal to justify analysis.
func (c *ExtractedContent) IsSufficient() bool {
	return IsSufficient(c)
}

// MarshalJSON includes the derived sufficiency in the encoded form.
func (c ExtractedContent) MarshalJSON() ([]byte, error) {
	type content ExtractedContent
	return json.Marshal(struct {
		content
		IsSufficient bool `json:"isSufficient"`
	}{content(c), c.IsSufficient()})
}

// IsSufficient is the pre-analysis gate. It is a pure function of c.
func IsSufficient(c *ExtractedContent) bool {
	if c == nil {
		return false
	}
	switch c.rule {
	case lengthRule:
		return utf8.RuneCountInString(c.FullText) >= c.minLength
	default:
		return utf8.RuneCountInString(c.Title) > MinTitleLength &&
			(utf8.RuneCountInString(c.FullText) > MinBodyLength || len(c.Headings) >= MinHeadings)
	}
}

// FindPrices returns the distinct Brazilian currency tokens in s in order
// of first appearance.
func FindPrices(s string) []string {
	return Dedupe(pricePattern.FindAllString(s, -1))
}

// IsCallToAction reports whether s contains call-to-action vocabulary.
func IsCallToAction(s string) bool {
	return ctaPattern.MatchString(s)
}

// CleanText collapses whitespace runs, including non-breaking spaces,
// into single spaces and trims the result.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most n characters of s without splitting a UTF-8
// sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Dedupe returns the distinct entries of values in order of first appearance.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// AnalysisText renders c as the plain text handed to the product analyzer.
func AnalysisText(c *ExtractedContent) string {
	if c == nil {
		return ""
	}

	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Título", c.Title)
	line("Descrição", c.Description)
	line("Seções", strings.Join(c.Headings, " | "))
	line("Benefícios", strings.Join(c.Bullets, " | "))
	line("Preços", strings.Join(c.Prices, ", "))
	line("Chamadas para ação", strings.Join(c.CTAs, ", "))
	line("Conteúdo", c.FullText)
	return strings.TrimSpace(b.String())
}
