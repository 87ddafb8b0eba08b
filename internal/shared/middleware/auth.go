package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// ContextKeySubject holds the token subject of the authenticated librarian.
const ContextKeySubject = "librarian"

// AuthMiddleware - requires a librarian bearer token
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify signature, expiry and role
		claims, err := manager.ValidateLibrarianToken(parts[1])
		if err != nil {
			logger.Warn("rejected token", map[string]interface{}{
				"request_id": c.GetString(ContextKeyRequestID),
				"reason":     err.Error(),
			})
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}
