package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"stable-route.backend/pkg/jwt"
	"stable-route.backend/pkg/utils"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TransportKey is the context key for the authenticated transport address
	TransportKey = "transport"
	// TransportRoleKey is the context key for the relayer role
	TransportRoleKey = "transportRole"
)

// TransportAuthMiddleware authenticates transport relayers delivering
// finalized bridge messages. The token's transport claim names the local
// bridge transport the relayer speaks for; the settlement usecase checks it
// against the configured local transport.
func TransportAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		if !utils.IsHexAddress(claims.Transport) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token carries no transport claim",
			})
			return
		}

		c.Set(TransportKey, utils.NormalizeAddress(claims.Transport))
		c.Set(TransportRoleKey, claims.Role)

		c.Next()
	}
}

// GetTransport gets the authenticated transport address from context
func GetTransport(c *gin.Context) (string, bool) {
	transport, exists := c.Get(TransportKey)
	if !exists {
		return "", false
	}
	addr, ok := transport.(string)
	return addr, ok && addr != ""
}
