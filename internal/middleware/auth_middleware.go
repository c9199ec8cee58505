package middleware

import (
	"net/http"
	"strings"

	"molecule-ledger/internal/services"
	"molecule-ledger/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token on protected routes and places
// the authenticated account in the request context. Malformed, tampered,
// expired, and orphaned tokens are all rejected identically.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)

		acc, err := service.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("invalid token", "INVALID_TOKEN"))
			c.Abort()
			return
		}

		ctx := services.WithAccountContext(c.Request.Context(), acc)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
