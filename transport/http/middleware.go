package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moonforge/launchpad/service"
)

// contextUserKey is where the middleware stores the authenticated user.
const contextUserKey = "user"

// AuthMiddleware creates middleware that validates bearer tokens and
// resolves the authenticated user into the request context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		user, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(contextUserKey, user)

		c.Next()
	}
}
