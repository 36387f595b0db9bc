package middleware

import (
	"github.com/gin-gonic/gin"

	"hotel-backend/internal/shared/utils"
)

const ClientIPKey = "client_ip"

// ClientIPMiddleware resolves the caller IP once and stores it on both the gin
// context and the request context, where services can read it back with
// utils.ClientIPFromContext.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c.Request)

		c.Set(ClientIPKey, clientIP)
		c.Request = c.Request.WithContext(utils.WithClientIP(c.Request.Context(), clientIP))

		c.Next()
	}
}
