package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/wyfcoding/inversion/response"

	"github.com/gin-gonic/gin"
)

// TimeoutMiddleware 设置请求的上下文超时保护。
// 计数本身不可中断，超时只作用于批量请求中尚未开始的序列。
func TimeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if duration <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			response.ErrorWithStatus(c, http.StatusGatewayTimeout, "Request Timeout", "")
			c.Abort()
		}
	}
}
