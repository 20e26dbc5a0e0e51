package storefrontserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	carthttpmapper "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	catalogports "github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
)

// CartSessions resolves the cart store owned by a browsing session.
type CartSessions interface {
	Cart(ctx context.Context, sessionID string) cartports.Service
}

// CartAPI wires HTTP transport with the per-session cart stores.
type CartAPI struct {
	sessions CartSessions
	catalog  catalogports.Catalog
	taxRate  decimal.Decimal
}

// NewCartAPI creates a CartAPI. A negative taxRate is replaced by the default rate.
func NewCartAPI(sessions CartSessions, catalog catalogports.Catalog, taxRate decimal.Decimal) CartAPI {
	if taxRate.IsNegative() {
		taxRate = carthttpmapper.DefaultTaxRate
	}
	return CartAPI{sessions: sessions, catalog: catalog, taxRate: taxRate}
}

// Get /v1/cart
// Returns the session cart with its order summary
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, ok := api.cart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainView(cart.View(c.Request.Context()), api.taxRate))
}

// Post /v1/cart/items
// Adds a product, capped at its current stock
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload carthttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, ok := api.cart(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	product, err := api.catalog.GetProduct(ctx, payload.ProductID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	outcome := cart.AddItem(ctx, *product, payload.Quantity)
	response := carthttpmapper.AddItemResponse{
		Quantity:  outcome.Quantity,
		Requested: outcome.Requested,
		Capped:    outcome.Capped,
		Cart:      carthttpmapper.FromDomainView(cart.View(ctx), api.taxRate),
	}
	switch {
	case outcome.Quantity == 0:
		response.Message = fmt.Sprintf("%s is out of stock.", product.Name)
	case outcome.Capped:
		response.Message = fmt.Sprintf("Only %d of %s available.", outcome.Quantity, product.Name)
	default:
		response.Message = product.Name + " has been added to your cart."
	}
	c.JSON(http.StatusOK, response)
}

// Put /v1/cart/items/:productId
// Sets a line quantity; zero removes the line
func (api *CartAPI) UpdateQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload carthttpmapper.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, ok := api.cart(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cart.UpdateQuantity(ctx, id, *payload.Quantity)
	c.JSON(http.StatusOK, carthttpmapper.FromDomainView(cart.View(ctx), api.taxRate))
}

// Delete /v1/cart/items/:productId
// Removes a line
func (api *CartAPI) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, ok := api.cart(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cart.RemoveItem(ctx, id)
	c.JSON(http.StatusOK, carthttpmapper.FromDomainView(cart.View(ctx), api.taxRate))
}

// Delete /v1/cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	cart, ok := api.cart(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cart.ClearCart(ctx)
	c.JSON(http.StatusOK, carthttpmapper.FromDomainView(cart.View(ctx), api.taxRate))
}

func (api *CartAPI) cart(c *gin.Context) (cartports.Service, bool) {
	if api.sessions == nil || api.catalog == nil {
		DefaultHandleFunc(c)
		return nil, false
	}
	return api.sessions.Cart(c.Request.Context(), SessionID(c)), true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		problems.BadRequest(c, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}
