package memory

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// SeedProducts is the demo assortment served when no product API is configured.
func SeedProducts() []domain.Product {
	p := func(id int64, name, category, brand, price string, stock int, rating float64) domain.Product {
		return domain.Product{
			ID:          id,
			Name:        name,
			Description: name + " from " + brand,
			Price:       decimal.RequireFromString(price),
			ImageURL:    "/images/products/" + strconv.FormatInt(id, 10) + ".jpg",
			Category:    category,
			Brand:       brand,
			Stock:       stock,
			Rating:      rating,
		}
	}
	return []domain.Product{
		p(1, "Wireless Headphones", "Electronics", "Sonora", "129.99", 15, 4.5),
		p(2, "Smart Watch", "Electronics", "Pulse", "199.00", 8, 4.2),
		p(3, "Cotton T-Shirt", "Clothing", "Basics", "19.99", 40, 4.0),
		p(4, "Rain Jacket", "Clothing", "Northfold", "89.50", 0, 4.6),
		p(5, "Ceramic Planter", "Home & Garden", "Terra", "24.00", 12, 4.1),
		p(6, "Yoga Mat", "Sports", "Flowline", "35.25", 20, 4.7),
		p(7, "Running Shoes", "Sports", "Stride", "110.00", 3, 4.4),
		p(8, "Mystery Novel", "Books", "Inkwell", "12.99", 25, 3.9),
		p(9, "Face Serum", "Health & Beauty", "Lumen", "42.00", 6, 4.3),
	}
}

// NewSeededCatalog returns a catalog preloaded with SeedProducts.
func NewSeededCatalog() *Catalog {
	c := NewCatalog()
	for _, product := range SeedProducts() {
		c.products[product.ID] = product
	}
	return c
}
