package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wyfcoding/inversion/limiter"
	"github.com/wyfcoding/inversion/response"

	"github.com/gin-gonic/gin"
)

// ConcurrencyLimitWithLimiter 限制同时处理的请求数，等待超过 waitTimeout 的请求返回 503。
// waitTimeout <= 0 时一直等到请求上下文结束。
func ConcurrencyLimitWithLimiter(l limiter.ConcurrencyLimiter, waitTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		acquireCtx := ctx
		if waitTimeout > 0 {
			var cancel context.CancelFunc
			acquireCtx, cancel = context.WithTimeout(ctx, waitTimeout)
			defer cancel()
		}

		if err := l.Acquire(acquireCtx); err != nil {
			slog.WarnContext(ctx, "http concurrency limit exceeded", "path", c.Request.URL.Path, "error", err)
			response.ErrorWithStatus(c, http.StatusServiceUnavailable, "Service Busy", "concurrency limit exceeded")
			c.Abort()
			return
		}

		defer l.Release()
		c.Next()
	}
}

// NewConcurrencyLimitMiddleware 创建一个 Gin 并发限流中间件，max <= 0 时不限制。
func NewConcurrencyLimitMiddleware(max int, waitTimeout time.Duration) gin.HandlerFunc {
	return ConcurrencyLimitWithLimiter(limiter.NewSemaphoreLimiter(max), waitTimeout)
}
