package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey = "request_id"

// RequestLogging tags every request with a unique id, echoes it in the
// X-Request-ID response header and logs method, path, status and
// duration. The id doubles as the correlation identifier on storage
// errors.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Printf("Request: %s %s -> %d (%s) [%s]",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			requestID,
		)
	}
}

// RequestID returns the request id set by RequestLogging, or "unknown"
// outside of it.
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "unknown"
}
