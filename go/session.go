package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the browsing-session id that scopes a cart.
const SessionHeader = "X-Cart-Session"

const (
	sessionContextKey = "storefront.session"
	maxSessionIDLen   = 128
)

// SessionMiddleware resolves the cart session from SessionHeader, issuing a new UUID when the
// header is missing or unusable, and echoes it back on the response.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" || len(id) > maxSessionIDLen || strings.ContainsAny(id, " \t\r\n:") {
			id = uuid.NewString()
		}
		c.Set(sessionContextKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
