package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/storefront-cart/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/storefront-cart/internal/domains/catalog/domain"
)

// SnapshotVersion is the schema version written by EncodeSnapshot.
const SnapshotVersion = 1

var (
	ErrCorruptSnapshot            = errors.New("corrupt cart snapshot")
	ErrUnsupportedSnapshotVersion = errors.New("unsupported cart snapshot version")
)

type snapshotDocument struct {
	Version int            `json:"version"`
	Items   []snapshotItem `json:"items"`
}

type snapshotItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   snapshotProduct `json:"product"`
}

// snapshotProduct keeps enough of the product to render the cart without a catalog call.
// Stock is the value known when the line was last touched and may be stale.
type snapshotProduct struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Category string          `json:"category,omitempty"`
	Brand    string          `json:"brand,omitempty"`
	Stock    int             `json:"stock"`
}

// legacyLine is the unversioned browser format: a bare array of {product, quantity}.
type legacyLine struct {
	Product  snapshotProduct `json:"product"`
	Quantity int             `json:"quantity"`
}

// EncodeSnapshot serializes lines in display order.
func EncodeSnapshot(lines []cartdomain.Line) ([]byte, error) {
	doc := snapshotDocument{Version: SnapshotVersion, Items: make([]snapshotItem, 0, len(lines))}
	for _, line := range lines {
		doc.Items = append(doc.Items, snapshotItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Product:   fromProduct(line.Product),
		})
	}
	return json.Marshal(doc)
}

// DecodeSnapshot parses a snapshot of any known version, migrating legacy formats.
// The returned lines are not normalized; use cartdomain.Restore for that.
func DecodeSnapshot(data []byte) ([]cartdomain.Line, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrCorruptSnapshot
	}
	if data[0] == '[' {
		return decodeLegacy(data)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if doc.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshotVersion, doc.Version)
	}
	lines := make([]cartdomain.Line, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item.Product.ID == 0 {
			item.Product.ID = item.ProductID
		}
		if item.ProductID <= 0 || item.Product.ID != item.ProductID {
			return nil, fmt.Errorf("%w: product id %d does not match line %d", ErrCorruptSnapshot, item.Product.ID, item.ProductID)
		}
		lines = append(lines, cartdomain.Line{Product: item.Product.toProduct(), Quantity: item.Quantity})
	}
	return lines, nil
}

func decodeLegacy(data []byte) ([]cartdomain.Line, error) {
	var legacy []legacyLine
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	lines := make([]cartdomain.Line, 0, len(legacy))
	for _, item := range legacy {
		if item.Product.ID <= 0 {
			return nil, fmt.Errorf("%w: legacy line without product id", ErrCorruptSnapshot)
		}
		lines = append(lines, cartdomain.Line{Product: item.Product.toProduct(), Quantity: item.Quantity})
	}
	return lines, nil
}

func fromProduct(p catalogdomain.Product) snapshotProduct {
	return snapshotProduct{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
	}
}

func (p snapshotProduct) toProduct() catalogdomain.Product {
	return catalogdomain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
	}
}
