package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"coralbay/models"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

const ClaimsKey = "adminClaims"

func AdminAuth(tokens *services.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Authorization header is missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := tokens.Parse(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, models.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Cannot verify token"})
			}
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentAdmin lấy claims đã được AdminAuth gắn vào context.
func CurrentAdmin(c *gin.Context) (*services.AdminClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.AdminClaims)
	return claims, ok
}
