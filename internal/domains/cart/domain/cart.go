package domain

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// Line pairs a product snapshot with the quantity held in the cart.
// While a line exists 1 <= Quantity <= Product.Stock.
type Line struct {
	Product  catalogdomain.Product
	Quantity int
}

// SubtotalCents is quantity times unit price in minor units.
func (l Line) SubtotalCents() int64 {
	return int64(l.Quantity) * l.Product.PriceCents()
}

// AtMaxQuantity reports whether the known stock forbids further increases.
func (l Line) AtMaxQuantity() bool {
	return l.Quantity >= l.Product.AvailableStock()
}

// AddOutcome describes the effect of an addition.
type AddOutcome struct {
	// Quantity held by the line after the call; 0 when no line is kept.
	Quantity int
	// Requested is the normalized quantity asked for.
	Requested int
	// Capped is set when stock prevented the full request.
	Capped  bool
	Changed bool
}

// View is a consistent read of the cart.
type View struct {
	Lines      []Line
	TotalItems int
	TotalCents int64
}

// TotalPrice expresses TotalCents as a two-decimal amount.
func (v View) TotalPrice() decimal.Decimal {
	return decimal.New(v.TotalCents, -2)
}

// Cart is the ordered, product-unique collection of lines.
type Cart struct {
	lines []Line
}

func NewCart() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from persisted lines, re-establishing the invariants:
// quantities are clamped to the stored stock, empty lines are dropped and duplicate
// products are merged into their first occurrence.
func Restore(lines []Line) *Cart {
	c := NewCart()
	for _, line := range lines {
		if idx := c.index(line.Product.ID); idx >= 0 {
			existing := c.lines[idx]
			stock := existing.Product.AvailableStock()
			incoming := clamp(line.Quantity, 0, stock)
			if incoming == 0 {
				continue
			}
			existing.Quantity, _ = addCapped(existing.Quantity, incoming, stock)
			c.lines[idx] = existing
			continue
		}
		line.Quantity = clamp(line.Quantity, 0, line.Product.AvailableStock())
		if line.Quantity == 0 {
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add merges quantity units of product into the cart, capped at product.Stock.
// The passed product replaces the stored snapshot, so a stale line is re-clamped here.
func (c *Cart) Add(product catalogdomain.Product, quantity int) AddOutcome {
	if quantity < 1 {
		quantity = 1
	}
	stock := product.AvailableStock()
	idx := c.index(product.ID)
	if idx < 0 {
		q, capped := addCapped(0, quantity, stock)
		if q == 0 {
			return AddOutcome{Requested: quantity, Capped: true}
		}
		c.lines = append(c.lines, Line{Product: product, Quantity: q})
		return AddOutcome{Quantity: q, Requested: quantity, Capped: capped, Changed: true}
	}

	q, capped := addCapped(c.lines[idx].Quantity, quantity, stock)
	if q == 0 {
		c.removeAt(idx)
		return AddOutcome{Requested: quantity, Capped: true, Changed: true}
	}
	c.lines[idx] = Line{Product: product, Quantity: q}
	return AddOutcome{Quantity: q, Requested: quantity, Capped: capped, Changed: true}
}

// UpdateQuantity sets the line quantity to clamp(quantity, 0, stock); zero removes the line.
// It reports whether the cart changed.
func (c *Cart) UpdateQuantity(productID int64, quantity int) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	line := c.lines[idx]
	q := clamp(quantity, 0, line.Product.AvailableStock())
	if q == 0 {
		c.removeAt(idx)
		return true
	}
	if q == line.Quantity {
		return false
	}
	c.lines[idx].Quantity = q
	return true
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID int64) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	c.removeAt(idx)
	return true
}

// Clear empties the cart and reports whether it held any line.
func (c *Cart) Clear() bool {
	had := len(c.lines) > 0
	c.lines = nil
	return had
}

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.SubtotalCents()
	}
	return total
}

// TotalPrice is TotalCents as a two-decimal amount.
func (c *Cart) TotalPrice() decimal.Decimal {
	return decimal.New(c.TotalCents(), -2)
}

func (c *Cart) View() View {
	return View{Lines: c.Lines(), TotalItems: c.TotalItems(), TotalCents: c.TotalCents()}
}

func (c *Cart) index(productID int64) int {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// addCapped returns min(held+n, stock) for n >= 1 without overflowing, and whether stock
// limited the result.
func addCapped(held, n, stock int) (int, bool) {
	if held >= stock || n > stock-held {
		return stock, true
	}
	return held + n, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
