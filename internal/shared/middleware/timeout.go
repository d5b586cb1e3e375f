package middleware

import (
	"context"
	"errors"
	"time"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Timeout bounds each request with a context deadline.
// Handlers run on the caller goroutine; repositories see the deadline through ctx and
// surface it as a persistence or unavailable error. If the deadline passed and nothing
// was written yet, the client gets 504 instead of whatever the chain left behind.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		logger.FromContext(c.Request.Context()).Warn("Request deadline exceeded",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"written", c.Writer.Written(),
		)
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(sharedError.RequestTimeout.Status, sharedError.RequestTimeout)
		}
	}
}
