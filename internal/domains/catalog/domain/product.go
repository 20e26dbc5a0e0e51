package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidName      = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("product price must not be negative")
	ErrInvalidStock     = errors.New("product stock must not be negative")
)

// Product is the catalog record as last fetched from the product API.
// Stock is the authoritative available quantity at fetch time.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Brand       string
	Stock       int
	Rating      float64
}

// Validate enforces the catalog invariants on a product record.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidProductID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// PriceCents returns the price in currency minor units, rounded half away from zero.
func (p Product) PriceCents() int64 {
	return p.Price.Round(2).Shift(2).IntPart()
}

// AvailableStock never reports less than zero.
func (p Product) AvailableStock() int {
	if p.Stock < 0 {
		return 0
	}
	return p.Stock
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.AvailableStock() > 0
}
