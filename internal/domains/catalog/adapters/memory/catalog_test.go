package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
)

func seeded(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	for _, p := range []domain.Product{
		{ID: 1, Name: "Desk Lamp", Price: decimal.RequireFromString("19.99"), Category: "Home & Garden", Stock: 3},
		{ID: 2, Name: "Running Shoes", Price: decimal.RequireFromString("89.00"), Category: "Sports", Stock: 10},
		{ID: 3, Name: "Floor Lamp", Price: decimal.RequireFromString("49.50"), Category: "Home & Garden", Stock: 0},
		{ID: 4, Name: "Novel", Price: decimal.RequireFromString("12.00"), Category: "Books", Stock: 7},
	} {
		require.NoError(t, c.Upsert(p))
	}
	return c
}

func TestCatalog_UpsertValidates(t *testing.T) {
	c := NewCatalog()
	require.ErrorIs(t, c.Upsert(domain.Product{ID: 1}), domain.ErrInvalidName)
}

func TestCatalog_GetProduct(t *testing.T) {
	c := seeded(t)
	p, err := c.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Running Shoes", p.Name)

	_, err = c.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCatalog_ListFiltersAndSorts(t *testing.T) {
	c := seeded(t)
	page, err := c.ListProducts(context.Background(), ports.ListQuery{
		Search: "LAMP", SortBy: "price", SortDir: ports.SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.Content[0].ID)
	assert.Equal(t, int64(1), page.Content[1].ID)

	page, err = c.ListProducts(context.Background(), ports.ListQuery{Category: "books"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(4), page.Content[0].ID)
}

func TestCatalog_ListPaginates(t *testing.T) {
	c := seeded(t)
	page, err := c.ListProducts(context.Background(), ports.ListQuery{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(4), page.Content[0].ID)

	page, err = c.ListProducts(context.Background(), ports.ListQuery{Page: 5, Size: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}

func TestCatalog_ListRejectsUnknownSort(t *testing.T) {
	_, err := seeded(t).ListProducts(context.Background(), ports.ListQuery{SortBy: "colour"})
	require.ErrorIs(t, err, ports.ErrInvalidQuery)
}

func TestCatalog_CategoriesAndStock(t *testing.T) {
	c := seeded(t)
	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Home & Garden", "Sports"}, categories)

	require.NoError(t, c.SetStock(1, 1))
	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	require.ErrorIs(t, c.SetStock(99, 1), ports.ErrNotFound)
}

func TestNewSeededCatalog_ProductsAreValid(t *testing.T) {
	c := NewSeededCatalog()
	for _, p := range SeedProducts() {
		require.NoError(t, p.Validate())
		got, err := c.GetProduct(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
	}
	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Contains(t, categories, "Health & Beauty")
}
