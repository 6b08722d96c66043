package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequiredAuthMiddleware rejects requests without an authenticated subject.
// It must be used AFTER OptionalAuthMiddleware. When enabled is false it lets
// every request through.
func RequiredAuthMiddleware(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if _, ok := SubjectFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
