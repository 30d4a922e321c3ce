package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"stable-route.backend/pkg/crypto"
)

const (
	// AdminAPIKeyHeader carries the operator key for configuration endpoints.
	AdminAPIKeyHeader = "X-Admin-API-Key"
)

// AdminAuthMiddleware guards route and fee configuration endpoints. The
// configured value is the bcrypt hash of the operator key, produced by the
// admin-apikey tool, so a leaked config file does not leak the key itself.
func AdminAuthMiddleware(apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKeyHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Admin API is not configured",
			})
			return
		}

		key := c.GetHeader(AdminAPIKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin API key is required",
			})
			return
		}

		if !crypto.CheckAPIKey(key, apiKeyHash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin API key",
			})
			return
		}

		c.Next()
	}
}
