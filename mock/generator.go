package mock

import (
	"context"

	"github.com/forgeads/forgeads"
)

var (
	_ forgeads.TextGenerator  = (*TextGenerator)(nil)
	_ forgeads.ImageGenerator = (*ImageGenerator)(nil)
	_ forgeads.PDFConverter   = (*PDFConverter)(nil)
)

// TextGenerator is a mock implementation of forgeads.TextGenerator.
type TextGenerator struct {
	GenerateFn func(ctx context.Context, req *forgeads.GenerateRequest) (string, error)
}

func (g *TextGenerator) Generate(ctx context.Context, req *forgeads.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}

// ImageGenerator is a mock implementation of forgeads.ImageGenerator.
type ImageGenerator struct {
	GenerateImageFn func(ctx context.Context, prompt string) (string, error)
}

func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return g.GenerateImageFn(ctx, prompt)
}

// PDFConverter is a mock implementation of forgeads.PDFConverter.
type PDFConverter struct {
	ConvertPDFFn func(ctx context.Context, pdf []byte) (string, error)
}

func (c *PDFConverter) ConvertPDF(ctx context.Context, pdf []byte) (string, error) {
	return c.ConvertPDFFn(ctx, pdf)
}
