package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders forbids framing by other origins and MIME sniffing.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
