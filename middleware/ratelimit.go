package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit giới hạn theo IP client.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.Allow(c.Request.Context(), c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"code": 0, "mess": "Too many requests, please slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
