// file: internal/server/middleware/requestid.go
// version: 1.0.0
// guid: 2c3d4e5f-6a7b-8c9d-0e1f-2a3b4c5d6efc

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// ContextRequestIDKey is the gin context key holding the request ID.
const ContextRequestIDKey = "request_id"

// RequestID assigns a ULID to each request, honoring an X-Request-ID header
// when the caller supplies one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
