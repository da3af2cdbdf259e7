package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder receives one observation per served request and tracks the
// requests in flight.  *prometheus.EngineMetrics satisfies it.
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, statusCode int, d time.Duration)
	TrackActiveRequest(method string) (done func())
}

// Metrics records every request under its route template, so that
// /api/v1/courts/:id is one series regardless of the id.  Unmatched routes
// are recorded as "unmatched".
func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := recorder.TrackActiveRequest(c.Request.Method)
		defer done()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
