package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"atlas-cms/internal/infrastructure/metrics"
)

// Metrics records request counters and latency per route. The route
// template (/v1/files/:id) is used as the endpoint label so ids do not
// explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
