package mapper

import (
	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-cart/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// DefaultTaxRate is the flat rate applied to the order summary.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Product is the transport-layer product shape.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       string  `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating,omitempty"`
}

// Line is a cart line as rendered to clients.
type Line struct {
	ProductID     int64   `json:"productId"`
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	Subtotal      string  `json:"subtotal"`
	AtMaxQuantity bool    `json:"atMaxQuantity"`
}

// Summary is the presentation-only order summary.
type Summary struct {
	Subtotal string `json:"subtotal"`
	TaxRate  string `json:"taxRate"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// Cart is the response body of the cart endpoints.
type Cart struct {
	Items      []Line  `json:"items"`
	TotalItems int     `json:"totalItems"`
	TotalPrice string  `json:"totalPrice"`
	Summary    Summary `json:"summary"`
}

// MaxAddQuantity bounds a single addition request; keep in sync with the binding tag below.
const MaxAddQuantity = 10000

// AddItemRequest is the body of POST /v1/cart/items.
type AddItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"max=10000"`
}

// UpdateQuantityRequest is the body of PUT /v1/cart/items/:productId.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AddItemResponse reports what an addition did alongside the refreshed cart.
type AddItemResponse struct {
	Quantity  int    `json:"quantity"`
	Requested int    `json:"requested"`
	Capped    bool   `json:"capped"`
	Message   string `json:"message,omitempty"`
	Cart      Cart   `json:"cart"`
}

// ProductPage is the catalog listing envelope.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// FromDomainProduct converts a catalog product to its transport shape.
func FromDomainProduct(p catalogdomain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Brand:       p.Brand,
		Stock:       p.Stock,
		Rating:      p.Rating,
	}
}

// FromDomainView renders a cart view with the order summary computed at taxRate.
func FromDomainView(view cartdomain.View, taxRate decimal.Decimal) Cart {
	items := make([]Line, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, Line{
			ProductID:     line.Product.ID,
			Product:       FromDomainProduct(line.Product),
			Quantity:      line.Quantity,
			Subtotal:      decimal.New(line.SubtotalCents(), -2).StringFixed(2),
			AtMaxQuantity: line.AtMaxQuantity(),
		})
	}
	return Cart{
		Items:      items,
		TotalItems: view.TotalItems,
		TotalPrice: view.TotalPrice().StringFixed(2),
		Summary:    NewSummary(view.TotalPrice(), taxRate),
	}
}

// NewSummary applies taxRate to subtotal, rounding the tax to cents. Shipping is always free.
func NewSummary(subtotal, taxRate decimal.Decimal) Summary {
	tax := subtotal.Mul(taxRate).Round(2)
	return Summary{
		Subtotal: subtotal.StringFixed(2),
		TaxRate:  taxRate.String(),
		Tax:      tax.StringFixed(2),
		Shipping: "free",
		Total:    subtotal.Add(tax).StringFixed(2),
	}
}
