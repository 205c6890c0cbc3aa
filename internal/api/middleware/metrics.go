package middleware

import (
	"strconv"
	"time"

	"github.com/bassista/dockhand/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counters and latency histograms per route.
// The route template (not the raw path) is used as the endpoint label
// to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method

		metrics.RequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
