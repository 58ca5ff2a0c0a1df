// Package middleware 提供了 Gin 的通用中间件实现。
package middleware

import (
	"github.com/wyfcoding/inversion/contextx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"
)

// RequestID 返回一个用于生成或传递请求 ID 的 Gin 中间件。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 尝试从 Header 获取已有的 Request ID
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			// 2. 如果没有，则生成一个新的 UUID
			requestID = uuid.NewString()
		}

		// 3. 注入到 Context 中供后续业务使用
		ctx := contextx.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(contextx.WithIP(ctx, c.ClientIP()))

		// 4. 设置到 Response Header 中，方便客户端追踪
		c.Header(HeaderXRequestID, requestID)

		c.Next()
	}
}
