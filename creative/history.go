package creative

import (
	"context"
	"fmt"

	"github.com/forgeads/forgeads"
)

// Ensure History implements forgeads.CreativeService at compile time.
var _ forgeads.CreativeService = (*History)(nil)

// History wraps a CreativeService and saves every completed analysis.
// Rejected and failed analyses are not saved.
type History struct {
	forgeads.CreativeService
	Products forgeads.ProductService
}

// AnalyzeProduct analyzes src and saves the result. A result that cannot
// be saved is not returned.
func (h *History) AnalyzeProduct(ctx context.Context, src *forgeads.Source) (*forgeads.AnalysisResult, error) {
	result, err := h.CreativeService.AnalyzeProduct(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := h.Products.CreateProduct(ctx, &forgeads.Product{AnalysisResult: *result}); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	return result, nil
}
