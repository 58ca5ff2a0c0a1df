package middleware

import (
	"log/slog"
	"time"

	"github.com/wyfcoding/inversion/contextx"
	"github.com/wyfcoding/inversion/tracing"

	"github.com/gin-gonic/gin"
)

// Logger 生产级访问日志中间件
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ctx := c.Request.Context()
		logger.InfoContext(ctx, "HTTP Request",
			"request_id", contextx.GetRequestID(ctx),
			"trace_id", tracing.GetTraceID(ctx),
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"ip", contextx.GetIP(ctx),
			"bytes_in", c.Request.ContentLength,
			"cost", time.Since(start),
		)
	}
}
