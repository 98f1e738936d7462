package forgeads

import (
	"context"
	"time"
)

// Product is a completed analysis saved to the history store.
type Product struct {
	ID             string `json:"id"`
	AnalysisResult `yaml:",inline"`

	// ContentHash identifies identical generated creatives.
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	if p.ProductName == "" {
		return Errorf(EINVALID, "product name required")
	}
	if p.SourceType == "" {
		return Errorf(EINVALID, "product source type required")
	}
	return nil
}

// ProductService represents a service for managing saved analyses.
type ProductService interface {
	// CreateProduct saves a completed analysis.
	CreateProduct(ctx context.Context, product *Product) error

	// FindProductByID retrieves a product by ID.
	// Returns ENOTFOUND if product does not exist.
	FindProductByID(ctx context.Context, id string) (*Product, error)

	// FindProducts retrieves products matching the filter, newest first.
	FindProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)

	// DeleteProduct permanently removes a product.
	// Returns ENOTFOUND if product does not exist.
	DeleteProduct(ctx context.Context, id string) error
}

// ProductFilter represents a filter for FindProducts.
type ProductFilter struct {
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CreativeService is the caller-facing operation surface.
type CreativeService interface {
	// AnalyzeProduct extracts, analyzes and writes copy for a source.
	// No partial result is ever returned.
	AnalyzeProduct(ctx context.Context, src *Source) (*AnalysisResult, error)

	// GenerateImage produces an ad image from manual inputs.
	GenerateImage(ctx context.Context, req *ImageRequest) (*ImageResult, error)

	// GenerateCopy writes a complete ad from manual inputs.
	GenerateCopy(ctx context.Context, req *CopyRequest) (*AdCopy, error)
}
