package forgeads

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Document thresholds.
const (
	// MinDocumentTextLength is the shortest converted PDF text accepted
	// without error.
	MinDocumentTextLength = 50
	// MinStructuredTextLength is the shortest PDF text worth structuring.
	MinStructuredTextLength = 150
	// MinPlainTextLength is the plain text file length that must be
	// exceeded for the file to be sufficient.
	MinPlainTextLength = 200

	// PlainTextTitle is the placeholder title of uploaded text files.
	PlainTextTitle = "Arquivo enviado"
	// DocumentTitle is the fallback title of PDFs without a first line.
	DocumentTitle = "Documento PDF"

	maxDocumentTitle       = 100
	maxDocumentDescription = 200
	minDocumentHeading     = 5
	maxDocumentHeading     = 100
)

const bulletGlyphs = "-•*→"

// StructureDocumentText structures text converted from a PDF.
//
// Text shorter than MinStructuredTextLength yields empty, insufficient
// content. Otherwise the first line becomes the title, the second the
// description, all-uppercase lines the headings and glyph-prefixed lines
// the bullets.
func StructureDocumentText(text string) *ExtractedContent {
	if utf8.RuneCountInString(text) < MinStructuredTextLength {
		return NewDocumentContent(ExtractedContent{}, MinStructuredTextLength)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	c := ExtractedContent{
		Title:    DocumentTitle,
		FullText: Truncate(text, MaxFullTextLength),
		MetaTags: map[string]string{},
		Headings: []string{},
		Bullets:  []string{},
		Prices:   FindPrices(text),
		CTAs:     []string{},
	}
	if len(lines) > 0 {
		c.Title = Truncate(lines[0], maxDocumentTitle)
	}
	if len(lines) > 1 {
		c.Description = Truncate(lines[1], maxDocumentDescription)
	}

	var ctas []string
	for _, line := range lines {
		if isDocumentHeading(line) && len(c.Headings) < MaxDocumentHeadings {
			c.Headings = append(c.Headings, line)
		}
		if r, size := utf8.DecodeRuneInString(line); strings.ContainsRune(bulletGlyphs, r) && len(c.Bullets) < MaxBullets {
			if bullet := strings.TrimSpace(line[size:]); bullet != "" {
				c.Bullets = append(c.Bullets, bullet)
			}
		}
		if IsCallToAction(line) {
			ctas = append(ctas, line)
		}
	}
	c.CTAs = Dedupe(ctas)
	if len(c.CTAs) > MaxDocumentCTAs {
		c.CTAs = c.CTAs[:MaxDocumentCTAs]
	}

	return NewDocumentContent(c, MinStructuredTextLength)
}

// NewTextContent wraps the contents of an uploaded plain text file.
func NewTextContent(text string) *ExtractedContent {
	return NewDocumentContent(ExtractedContent{
		Title:    PlainTextTitle,
		FullText: Truncate(text, MaxFullTextLength),
		MetaTags: map[string]string{},
		Headings: []string{},
		Bullets:  []string{},
		Prices:   []string{},
		CTAs:     []string{},
	}, MinPlainTextLength+1)
}

// isDocumentHeading reports whether line is an all-uppercase heading of
// acceptable length. Lines without letters are not headings.
func isDocumentHeading(line string) bool {
	n := utf8.RuneCountInString(line)
	if n <= minDocumentHeading || n >= maxDocumentHeading {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
