package monitoring

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// HTTPStats are process-wide request counters since start.
type HTTPStats struct {
	Active       int64  `json:"active"`
	Total        uint64 `json:"total"`
	ClientErrors uint64 `json:"client_errors"`
	ServerErrors uint64 `json:"server_errors"`
}

var (
	activeHTTPRequests atomic.Int64
	totalHTTPRequests  atomic.Uint64
	clientErrorTotal   atomic.Uint64
	serverErrorTotal   atomic.Uint64
)

// RequestMetricsMiddleware counts in-flight and finished requests, split by
// 4xx and 5xx outcome.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeHTTPRequests.Add(1)
		totalHTTPRequests.Add(1)
		defer activeHTTPRequests.Add(-1)

		c.Next()

		switch status := c.Writer.Status(); {
		case status >= 500:
			serverErrorTotal.Add(1)
		case status >= 400:
			clientErrorTotal.Add(1)
		}
	}
}

func getHTTPStats() HTTPStats {
	return HTTPStats{
		Active:       activeHTTPRequests.Load(),
		Total:        totalHTTPRequests.Load(),
		ClientErrors: clientErrorTotal.Load(),
		ServerErrors: serverErrorTotal.Load(),
	}
}
