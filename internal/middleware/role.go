package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginPath is where anonymous requests are sent
const LoginPath = "/login"

// RequireAuthenticated redirects anonymous requests to the login page
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			c.Redirect(http.StatusFound, LoginPath) // Navigational fallback, not an error
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through only sessions with the given role. Anonymous requests are
// redirected to login; authenticated requests with another role get 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c) // Get principal from context
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden", "code": "forbidden"})
			return
		}
		c.Next()
	}
}
