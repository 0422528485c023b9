package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the context key for the request ID.
	RequestIDKey ContextKey = "request_id"
)

// RequestID tags every request with an ID, reusing the one sent by the client if any.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the ID of the current request, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}
