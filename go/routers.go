package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the API handlers mounted by NewRouter.
type ApiHandleFunctions struct {
	CartAPI    CartAPI
	ProductAPI ProductAPI
}

// NewRouter returns a new router with recovery, the given middleware and the cart session
// header applied to every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.GET("/healthz", Healthz)
	v1 := router.Group("/v1", SessionMiddleware())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		v1.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a bound handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"GetCart",
			http.MethodGet,
			"/cart",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/cart/items",
			handleFunctions.CartAPI.AddItem,
		},
		{
			"UpdateCartItem",
			http.MethodPut,
			"/cart/items/:productId",
			handleFunctions.CartAPI.UpdateQuantity,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/cart/items/:productId",
			handleFunctions.CartAPI.RemoveItem,
		},
		{
			"ClearCart",
			http.MethodDelete,
			"/cart",
			handleFunctions.CartAPI.ClearCart,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"ListCategories",
			http.MethodGet,
			"/products/categories",
			handleFunctions.ProductAPI.Categories,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/products/:productId",
			handleFunctions.ProductAPI.GetProduct,
		},
	}
}
