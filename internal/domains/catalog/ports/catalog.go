package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidQuery = errors.New("invalid catalog query")
)

// SortDirection orders catalog listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListQuery carries the listing filters understood by the product API.
type ListQuery struct {
	Page     int
	Size     int
	Search   string
	Category string
	SortBy   string
	SortDir  SortDirection
}

// Page is one slice of a catalog listing.
type Page struct {
	Content       []domain.Product
	TotalElements int
	TotalPages    int
}

// Catalog supplies product records. The cart trusts the stock it returns at call time.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, query ListQuery) (*Page, error)
	Categories(ctx context.Context) ([]string, error)
}
