package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fiscal-ops-backend/internal/services/auth"
)

const claimsKey = "authClaims"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(service *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := service.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func Claims(c *gin.Context) *auth.Claims {
	if raw, ok := c.Get(claimsKey); ok {
		if claims, ok := raw.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
