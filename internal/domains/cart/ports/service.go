package ports

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-cart/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// Service exposes the cart store to presentation adapters. Each call is atomic.
type Service interface {
	Items(ctx context.Context) []cartdomain.Line
	TotalItems(ctx context.Context) int
	TotalPrice(ctx context.Context) decimal.Decimal
	View(ctx context.Context) cartdomain.View

	AddItem(ctx context.Context, product catalogdomain.Product, quantity int) cartdomain.AddOutcome
	UpdateQuantity(ctx context.Context, productID int64, quantity int)
	RemoveItem(ctx context.Context, productID int64)
	ClearCart(ctx context.Context)
}
