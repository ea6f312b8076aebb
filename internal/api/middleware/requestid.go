package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// RequestIDHeader is the response header carrying the request identifier.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with a sortable identifier. Incoming IDs from
// trusted proxies are passed through; everything else gets a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if !validRequestID(reqID) {
			reqID = id.NewRequestID().String()
		}
		c.Set("request_id", reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

func validRequestID(reqID string) bool {
	payload, ok := strings.CutPrefix(reqID, id.RequestPrefix+"_")
	if !ok {
		return false
	}
	return id.IsValid(payload)
}
