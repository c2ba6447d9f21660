package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleetpay/internal/shared/contextutil"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
