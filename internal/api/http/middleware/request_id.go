package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"
	ContextKey      = "request_id"
)

type requestIDKey struct{}

// RequestID ensures every request carries an id and logs one line per
// request once the handler chain has finished.
//   - reuses X-Request-Id when the caller sent one, otherwise generates one
//   - stores it in the gin context and the request's context.Context
//   - echoes it back in the X-Request-Id response header
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(ContextKey, rid)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(HeaderRequestID, rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// WithRequestID returns a copy of ctx carrying rid.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
