//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	// CartProviderName is this service as seen by the storefront web client.
	CartProviderName = "storefront-cart-api"
	WebConsumerName  = "storefront-web"

	// CatalogProviderName is the remote product API consumed by this service.
	CatalogProviderName = "product-api"

	StateCartEmpty       = "an empty cart for session pact-session"
	StateProductInStock  = "product 1 is in stock"
	StateProductMissing  = "no product with id 404"
	StateCategoriesExist = "product categories exist"
)

const (
	Session           = "pact-session"
	InStockProductID  = int64(1)
	MissingProductID  = int64(404)
	InStockProductQty = 15
	APIKey            = "pact-key"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for a consumer/provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload is the product API record used across interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":          InStockProductID,
		"name":        "Wireless Headphones",
		"description": "Wireless Headphones from Sonora",
		"price":       129.99,
		"imageUrl":    "/images/products/1.jpg",
		"category":    "Electronics",
		"brand":       "Sonora",
		"stock":       InStockProductQty,
		"rating":      4.5,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
