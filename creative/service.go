package creative

import (
	"context"

	"github.com/forgeads/forgeads"
)

// Ensure Service implements forgeads.CreativeService at compile time.
var _ forgeads.CreativeService = (*Service)(nil)

// Service is the caller-facing operation surface. Inputs are validated
// before any work starts.
type Service struct {
	Pipeline *Pipeline
	Ads      *AdWriter
	Images   forgeads.ImageGenerator
}

// NewService wires a Service from its collaborators.
func NewService(fetcher forgeads.Fetcher, pages forgeads.PageExtractor, converter forgeads.PDFConverter, text forgeads.TextGenerator, images forgeads.ImageGenerator) *Service {
	return &Service{
		Pipeline: &Pipeline{
			Fetcher:   fetcher,
			Pages:     pages,
			Documents: &DocumentExtractor{Converter: converter},
			Analyzer:  &Analyzer{Generator: text},
			Copy:      &CopyWriter{Generator: text},
			Briefer:   &Briefer{Generator: text},
		},
		Ads:    &AdWriter{Generator: text},
		Images: images,
	}
}

// AnalyzeProduct runs the pipeline for src.
func (s *Service) AnalyzeProduct(ctx context.Context, src *forgeads.Source) (*forgeads.AnalysisResult, error) {
	if src == nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Informe uma URL ou envie um arquivo.")
	}
	return s.Pipeline.Run(ctx, src)
}

// GenerateImage generates an ad image for req.
func (s *Service) GenerateImage(ctx context.Context, req *forgeads.ImageRequest) (*forgeads.ImageResult, error) {
	if req == nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Dados da imagem são obrigatórios.")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	url, err := s.Images.GenerateImage(ctx, BuildImagePrompt(req))
	if err != nil {
		return nil, err
	}
	return &forgeads.ImageResult{URL: url}, nil
}

// GenerateCopy writes a complete ad for req.
func (s *Service) GenerateCopy(ctx context.Context, req *forgeads.CopyRequest) (*forgeads.AdCopy, error) {
	if req == nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Dados do anúncio são obrigatórios.")
	}
	return s.Ads.WriteAd(ctx, req)
}
