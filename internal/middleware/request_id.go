package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aegnt-unltd/pkg/log"
)

// RequestID propagates X-Request-ID, minting one when the client sent none,
// and stores it in the request context for logging.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
