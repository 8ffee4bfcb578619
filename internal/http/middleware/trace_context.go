package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachTraceContext resolves the request's trace and request ids, stores them
// on the request context and echoes them back as response headers.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, td := ctxutil.EnsureTraceData(c.Request.Context(), c.GetHeader(headerTraceID), c.GetHeader(headerRequestID))
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(headerTraceID, td.TraceID)
		c.Writer.Header().Set(headerRequestID, td.RequestID)
		c.Next()
	}
}
