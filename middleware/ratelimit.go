package middleware

import (
	"log/slog"
	"net/http"

	"github.com/wyfcoding/inversion/limiter"
	"github.com/wyfcoding/inversion/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware 使用客户端 IP 作为限流标识，l 为 nil 时不生效。
func RateLimitMiddleware(l limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		key := c.ClientIP()

		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			// 限流组件故障时放行，只记录日志。
			slog.ErrorContext(c.Request.Context(), "rate limiter internal error, fail-open applied", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			slog.WarnContext(c.Request.Context(), "request rejected by rate limiter", "key", key, "path", c.Request.URL.Path)
			response.ErrorWithStatus(c, http.StatusTooManyRequests, "too many requests", "access rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// NewIPRateLimitMiddleware 按客户端 IP 限流，rps <= 0 时返回直接放行的中间件。
func NewIPRateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return RateLimitMiddleware(nil)
	}
	if burst <= 0 {
		burst = int(rps) + 1
	}
	return RateLimitMiddleware(limiter.NewKeyedLimiter(rate.Limit(rps), burst, 0))
}
