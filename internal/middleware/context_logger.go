package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetpay/internal/shared/contextutil"
)

// ContextLogger attaches a request-scoped logger so services can log with
// request_id and user_id without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := logger.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("user_id", c.GetString("user_id")),
		)

		c.Request = c.Request.WithContext(
			contextutil.WithLogger(c.Request.Context(), reqLogger),
		)

		c.Next()
	}
}
