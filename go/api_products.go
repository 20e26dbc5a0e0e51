package storefrontserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/http/mapper"
	catalogports "github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
)

// ProductAPI exposes the catalog to the storefront.
type ProductAPI struct {
	catalog catalogports.Catalog
}

func NewProductAPI(catalog catalogports.Catalog) ProductAPI {
	return ProductAPI{catalog: catalog}
}

// Get /v1/products
// Lists products with paging, search, category filter and sorting
func (api *ProductAPI) ListProducts(c *gin.Context) {
	if api.catalog == nil {
		DefaultHandleFunc(c)
		return
	}
	query, err := parseListQuery(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	page, err := api.catalog.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	out := carthttpmapper.ProductPage{
		Content:       make([]carthttpmapper.Product, 0, len(page.Content)),
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
	for _, product := range page.Content {
		out.Content = append(out.Content, carthttpmapper.FromDomainProduct(product))
	}
	c.JSON(http.StatusOK, out)
}

// Get /v1/products/categories
// Lists product categories
func (api *ProductAPI) Categories(c *gin.Context) {
	if api.catalog == nil {
		DefaultHandleFunc(c)
		return
	}
	categories, err := api.catalog.Categories(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get /v1/products/:productId
// Finds a product by id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	if api.catalog == nil {
		DefaultHandleFunc(c)
		return
	}
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainProduct(*product))
}

func parseListQuery(c *gin.Context) (catalogports.ListQuery, error) {
	query := catalogports.ListQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
	}
	var err error
	if query.Page, err = intQuery(c, "page", 0); err != nil {
		return query, err
	}
	if query.Size, err = intQuery(c, "size", 1); err != nil {
		return query, err
	}
	switch dir := catalogports.SortDirection(strings.ToLower(strings.TrimSpace(c.Query("sortDir")))); dir {
	case "", catalogports.SortAsc, catalogports.SortDesc:
		query.SortDir = dir
	default:
		return query, fmt.Errorf("sortDir must be %q or %q", catalogports.SortAsc, catalogports.SortDesc)
	}
	return query, nil
}

// intQuery parses an optional integer parameter; absent values yield 0.
func intQuery(c *gin.Context, name string, minValue int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < minValue {
		return 0, fmt.Errorf("%s must be an integer >= %d", name, minValue)
	}
	return v, nil
}
