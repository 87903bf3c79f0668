package middlewares

import (
	"github.com/gin-gonic/gin"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		// food images and the storefront script come from our own origin
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data:")

		c.Next()
	}
}
