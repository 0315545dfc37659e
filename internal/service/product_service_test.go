package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
)

// mockProductRepo is an in-memory ProductRepository
type mockProductRepo struct {
	products []*domain.Product
}

func (m *mockProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	return m.products, nil
}

func (m *mockProductRepo) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func testProducts() []*domain.Product {
	return []*domain.Product{
		{ID: "p1", Name: "Great Value Milk", Category: "grocery", Price: 3.64},
		{ID: "p2", Name: "iPhone 14", Category: "electronics", Price: 699.00},
		{ID: "p3", Name: "Coffee Maker", Category: "home", Price: 79.99},
	}
}

func TestProductList(t *testing.T) {
	svc := NewProductService(&mockProductRepo{products: testProducts()})

	all, err := svc.List(context.Background(), &dto.ProductListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	grocery, err := svc.List(context.Background(), &dto.ProductListFilter{Category: "grocery"})
	require.NoError(t, err)
	require.Len(t, grocery, 1)
	assert.Equal(t, "Great Value Milk", grocery[0].Name)

	found, err := svc.List(context.Background(), &dto.ProductListFilter{Search: "iphone"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "iPhone 14", found[0].Name)
}

func TestProductSearchWinsOverCategory(t *testing.T) {
	svc := NewProductService(&mockProductRepo{products: testProducts()})

	found, err := svc.List(context.Background(), &dto.ProductListFilter{
		Category: "grocery",
		Search:   "coffee",
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Coffee Maker", found[0].Name)
}

func TestProductGet(t *testing.T) {
	svc := NewProductService(&mockProductRepo{products: testProducts()})

	p, err := svc.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "iPhone 14", p.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
