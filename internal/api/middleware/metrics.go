package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver 请求指标记录器，由 service.MetricsService 实现
type RequestObserver interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Metrics 记录请求耗时与状态码；path 取路由模板，未匹配路由统一记为 unmatched
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
