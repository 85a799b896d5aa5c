package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/gadget-store-api/internal/metrics"
)

// Metrics records request count and latency per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		labels := []string{c.Request.Method, routePath(c), strconv.Itoa(c.Writer.Status())}
		metrics.RequestTotal.WithLabelValues(labels...).Inc()
		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	}
}
