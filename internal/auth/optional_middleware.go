package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gamereviews/backend/pkg/jwt"
)

// SubjectKey is the gin context key holding the authenticated subject.
const SubjectKey = "subject"

// OptionalAuthMiddleware inspects for a bearer token and records its subject
// if present and valid, but does not fail if the token is missing or invalid.
// With an empty secret every request stays anonymous.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if subject, err := jwt.ParseToken(parts[1], secret); err == nil {
				c.Set(SubjectKey, subject)
				c.Request = c.Request.WithContext(WithSubject(c.Request.Context(), subject))
			}
		}
		c.Next()
	}
}
