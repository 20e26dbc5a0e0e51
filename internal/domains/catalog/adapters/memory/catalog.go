package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// DefaultPageSize matches the storefront listing grid.
const DefaultPageSize = 12

// Catalog is an in-memory product catalog used for local runs and tests.
type Catalog struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: map[int64]domain.Product{}}
}

// Upsert validates and stores a product, replacing any previous record with the same id.
func (c *Catalog) Upsert(product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
	return nil
}

// SetStock adjusts the stock of a known product.
func (c *Catalog) SetStock(id int64, stock int) error {
	if stock < 0 {
		return domain.ErrInvalidStock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	product.Stock = stock
	c.products[id] = product
	return nil
}

func (c *Catalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &product, nil
}

func (c *Catalog) ListProducts(_ context.Context, query ports.ListQuery) (*ports.Page, error) {
	c.mu.RLock()
	matched := make([]domain.Product, 0, len(c.products))
	search := strings.ToLower(strings.TrimSpace(query.Search))
	for _, product := range c.products {
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		if query.Category != "" && !strings.EqualFold(product.Category, query.Category) {
			continue
		}
		matched = append(matched, product)
	}
	c.mu.RUnlock()

	less, err := sortFunc(query.SortBy, query.SortDir)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	size := query.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	page := query.Page
	if page < 0 {
		page = 0
	}
	total := len(matched)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return &ports.Page{
		Content:       matched[start:end],
		TotalElements: total,
		TotalPages:    (total + size - 1) / size,
	}, nil
}

func (c *Catalog) Categories(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, product := range c.products {
		if product.Category == "" {
			continue
		}
		seen[product.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func sortFunc(sortBy string, dir ports.SortDirection) (func(a, b domain.Product) bool, error) {
	var less func(a, b domain.Product) bool
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "", "id":
		less = func(a, b domain.Product) bool { return a.ID < b.ID }
	case "name":
		less = func(a, b domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "price":
		less = func(a, b domain.Product) bool { return a.Price.LessThan(b.Price) }
	case "stock":
		less = func(a, b domain.Product) bool { return a.Stock < b.Stock }
	default:
		return nil, fmt.Errorf("%w: unsupported sort field %q", ports.ErrInvalidQuery, sortBy)
	}
	if dir == ports.SortDesc {
		return func(a, b domain.Product) bool { return less(b, a) }, nil
	}
	return less, nil
}
