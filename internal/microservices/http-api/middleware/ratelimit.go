package middleware

import (
	"net/http"

	"yamdb/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit throttles requests per client IP under scope. A nil limiter
// disables throttling.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP()) {
			Logger(c).WarnContext(c.Request.Context(), "request throttled", "scope", scope, "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "request was throttled"})
			return
		}
		c.Next()
	}
}
