package middleware

import (
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
	maxRequestIDLength  = 128
)

// RequestIDFromContext returns the request id or "" outside RequestIDMiddleware.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// RequestIDMiddleware tags every request with an id, echoes it back in
// X-Request-ID and writes one access log line once the handler is done.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		requestID := normalizeRequestID(c.GetHeader(requestIDHeaderName))
		if requestID == "" {
			requestID = newRequestID()
		}

		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeaderName, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		actor := ActorFromContext(c).ID
		if actor == "" {
			actor = "-"
		}

		log.Printf(
			"request_id=%s method=%s route=%s status=%d latency_ms=%.2f user_id=%s client_ip=%s",
			requestID,
			c.Request.Method,
			route,
			c.Writer.Status(),
			float64(time.Since(startedAt).Microseconds())/1000.0,
			actor,
			c.ClientIP(),
		)
	}
}

// normalizeRequestID keeps caller supplied ids printable and bounded so they
// can be logged as a single key=value token.
func normalizeRequestID(raw string) string {
	candidate := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if len(candidate) > maxRequestIDLength {
		candidate = candidate[:maxRequestIDLength]
	}
	return candidate
}

func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
