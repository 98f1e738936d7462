// Package slog decorates collaborators with structured logging.
//
// Every decorator logs one record per call, after the call returns, with
// its duration and error.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgeads/forgeads"
)

// Compile-time interface verification.
var (
	_ forgeads.Fetcher        = (*LoggingFetcher)(nil)
	_ forgeads.TextGenerator  = (*LoggingTextGenerator)(nil)
	_ forgeads.ImageGenerator = (*LoggingImageGenerator)(nil)
	_ forgeads.PDFConverter   = (*LoggingPDFConverter)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   forgeads.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next forgeads.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingTextGenerator wraps a TextGenerator with logging. Prompts are
// not logged; only their size is.
type LoggingTextGenerator struct {
	next   forgeads.TextGenerator
	logger *slog.Logger
}

// NewLoggingTextGenerator creates a new LoggingTextGenerator.
func NewLoggingTextGenerator(next forgeads.TextGenerator, logger *slog.Logger) *LoggingTextGenerator {
	return &LoggingTextGenerator{next: next, logger: logger}
}

// Generate logs the request shape and delegates to the wrapped generator.
func (g *LoggingTextGenerator) Generate(ctx context.Context, req *forgeads.GenerateRequest) (text string, err error) {
	defer func(begin time.Time) {
		schema := ""
		if req.Schema != nil {
			schema = req.Schema.Name
		}
		g.logger.Info("generate",
			"messages", len(req.Messages),
			"prompt_chars", promptChars(req),
			"schema", schema,
			"response_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}

func promptChars(req *forgeads.GenerateRequest) int {
	var n int
	for _, m := range req.Messages {
		n += len(m.Content)
	}
	return n
}

// LoggingImageGenerator wraps an ImageGenerator with logging.
type LoggingImageGenerator struct {
	next   forgeads.ImageGenerator
	logger *slog.Logger
}

// NewLoggingImageGenerator creates a new LoggingImageGenerator.
func NewLoggingImageGenerator(next forgeads.ImageGenerator, logger *slog.Logger) *LoggingImageGenerator {
	return &LoggingImageGenerator{next: next, logger: logger}
}

// GenerateImage logs and delegates to the wrapped generator. The image
// itself is never logged.
func (g *LoggingImageGenerator) GenerateImage(ctx context.Context, prompt string) (url string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate image",
			"prompt_chars", len(prompt),
			"url_bytes", len(url),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GenerateImage(ctx, prompt)
}

// LoggingPDFConverter wraps a PDFConverter with logging.
type LoggingPDFConverter struct {
	next   forgeads.PDFConverter
	logger *slog.Logger
}

// NewLoggingPDFConverter creates a new LoggingPDFConverter.
func NewLoggingPDFConverter(next forgeads.PDFConverter, logger *slog.Logger) *LoggingPDFConverter {
	return &LoggingPDFConverter{next: next, logger: logger}
}

// ConvertPDF logs and delegates to the wrapped converter.
func (c *LoggingPDFConverter) ConvertPDF(ctx context.Context, pdf []byte) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert pdf",
			"bytes", len(pdf),
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ConvertPDF(ctx, pdf)
}
