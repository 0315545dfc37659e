package service

import (
	"context"
	"errors"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/repository"
)

// ErrProductNotFound is returned when the product does not exist
var ErrProductNotFound = errors.New("product not found")

// ProductService serves the catalog
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a ProductService
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns products, optionally narrowed by category or search text.
// Search wins when both filters are given.
func (s *ProductService) List(ctx context.Context, filter *dto.ProductListFilter) ([]*domain.Product, error) {
	if filter.Search != "" {
		return s.products.Search(ctx, filter.Search)
	}
	if filter.Category != "" {
		return s.products.ListByCategory(ctx, filter.Category)
	}
	return s.products.List(ctx)
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}
