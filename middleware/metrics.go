package middleware

import (
	"strconv"
	"time"

	"github.com/wyfcoding/inversion/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsOptions 定义指标中间件的可选参数。
type MetricsOptions struct {
	SkipPaths []string
}

// HTTPMetricsMiddleware 返回一个用于采集 HTTP 请求指标的 Gin 中间件。
func HTTPMetricsMiddleware(m *metrics.Metrics, opts MetricsOptions) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, path := range opts.SkipPaths {
		skip[path] = struct{}{}
	}
	m.RegisterRequestSizeMetrics()

	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if _, ok := skip[path]; ok || m == nil {
			c.Next()
			return
		}

		method := c.Request.Method
		m.HTTPInFlight.WithLabelValues(method, path).Inc()
		defer m.HTTPInFlight.WithLabelValues(method, path).Dec()

		start := time.Now()

		c.Next()

		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if c.Request.ContentLength > 0 {
			m.HTTPRequestSizeBytes.WithLabelValues(method, path).Observe(float64(c.Request.ContentLength))
		}
	}
}
