package storefrontserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carthttpmapper "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/http/mapper"
)

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, newTestCatalog(t))

	w := do(t, router, http.MethodGet, "/v1/products?category=home%20%26%20garden&sortBy=price&sortDir=desc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page carthttpmapper.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Sold Out Kettle", page.Content[0].Name)
	assert.Equal(t, "30.00", page.Content[0].Price)
	assert.Equal(t, 2, page.TotalElements)
}

func TestListProducts_InvalidQuery(t *testing.T) {
	router := newTestRouter(t, newTestCatalog(t))
	for _, path := range []string{
		"/v1/products?page=-1",
		"/v1/products?size=0",
		"/v1/products?sortDir=sideways",
		"/v1/products?sortBy=rank",
	} {
		w := do(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCategories(t *testing.T) {
	router := newTestRouter(t, newTestCatalog(t))
	w := do(t, router, http.MethodGet, "/v1/products/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []string{"Books", "Home & Garden"}, categories)
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, newTestCatalog(t))
	w := do(t, router, http.MethodGet, "/v1/products/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product carthttpmapper.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Novel", product.Name)

	w = do(t, router, http.MethodGet, "/v1/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
