package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout returns middleware that sets a deadline on the request context.
// Handlers and stores must observe ctx.Done(); a store call cut short by the
// deadline reports a technical error, which Problems turns into the generic
// 500. A non-positive timeout leaves the context unchanged.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
