package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	catalogclient "github.com/Apurer/storefront-cart/internal/clients/http/catalog"
	"github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog implements the catalog port over the remote product API.
type Catalog struct {
	client *catalogclient.Client
}

func NewCatalog(client *catalogclient.Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	payload, err := c.client.GetProduct(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	product := ToDomain(*payload)
	return &product, nil
}

func (c *Catalog) ListProducts(ctx context.Context, query ports.ListQuery) (*ports.Page, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	params := catalogclient.ListParams{
		Search:   query.Search,
		Category: query.Category,
		SortBy:   query.SortBy,
		SortDir:  string(query.SortDir),
	}
	if query.Page > 0 {
		params.Page = &query.Page
	}
	if query.Size > 0 {
		params.Size = &query.Size
	}
	payload, err := c.client.ListProducts(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	content := make([]domain.Product, 0, len(payload.Content))
	for _, item := range payload.Content {
		content = append(content, ToDomain(item))
	}
	return &ports.Page{
		Content:       content,
		TotalElements: payload.TotalElements,
		TotalPages:    payload.TotalPages,
	}, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	return c.client.Categories(ctx), nil
}

// ToDomain converts a product API payload into the catalog domain model.
func ToDomain(payload catalogclient.ProductPayload) domain.Product {
	return domain.Product{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		Brand:       payload.Brand,
		Stock:       payload.Stock,
		Rating:      payload.Rating,
	}
}

func (c *Catalog) ensureClient() error {
	if c == nil || c.client == nil {
		return errors.New("remote catalog not configured")
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, catalogclient.ErrNotFound) {
		return ports.ErrNotFound
	}
	var statusErr *catalogclient.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %w", ports.ErrInvalidQuery, err)
	}
	return err
}
