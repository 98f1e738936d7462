package mock

import (
	"context"

	"github.com/forgeads/forgeads"
)

var (
	_ forgeads.ProductService  = (*ProductService)(nil)
	_ forgeads.CreativeService = (*CreativeService)(nil)
)

// ProductService is a mock implementation of forgeads.ProductService.
type ProductService struct {
	CreateProductFn   func(ctx context.Context, product *forgeads.Product) error
	FindProductByIDFn func(ctx context.Context, id string) (*forgeads.Product, error)
	FindProductsFn    func(ctx context.Context, filter forgeads.ProductFilter) ([]*forgeads.Product, error)
	DeleteProductFn   func(ctx context.Context, id string) error
}

func (s *ProductService) CreateProduct(ctx context.Context, product *forgeads.Product) error {
	return s.CreateProductFn(ctx, product)
}

func (s *ProductService) FindProductByID(ctx context.Context, id string) (*forgeads.Product, error) {
	return s.FindProductByIDFn(ctx, id)
}

func (s *ProductService) FindProducts(ctx context.Context, filter forgeads.ProductFilter) ([]*forgeads.Product, error) {
	return s.FindProductsFn(ctx, filter)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.DeleteProductFn(ctx, id)
}

// CreativeService is a mock implementation of forgeads.CreativeService.
type CreativeService struct {
	AnalyzeProductFn func(ctx context.Context, src *forgeads.Source) (*forgeads.AnalysisResult, error)
	GenerateImageFn  func(ctx context.Context, req *forgeads.ImageRequest) (*forgeads.ImageResult, error)
	GenerateCopyFn   func(ctx context.Context, req *forgeads.CopyRequest) (*forgeads.AdCopy, error)
}

func (s *CreativeService) AnalyzeProduct(ctx context.Context, src *forgeads.Source) (*forgeads.AnalysisResult, error) {
	return s.AnalyzeProductFn(ctx, src)
}

func (s *CreativeService) GenerateImage(ctx context.Context, req *forgeads.ImageRequest) (*forgeads.ImageResult, error) {
	return s.GenerateImageFn(ctx, req)
}

func (s *CreativeService) GenerateCopy(ctx context.Context, req *forgeads.CopyRequest) (*forgeads.AdCopy, error) {
	return s.GenerateCopyFn(ctx, req)
}
