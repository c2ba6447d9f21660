package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"fleetpay/internal/shared/apperror"
	"fleetpay/internal/shared/response"
)

// Authorize enforces role permissions for one resource/action pair. It must
// run after Auth, which sets the role claim.
func Authorize(enforcer *casbin.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "no role assigned", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"missing permission "+resource+":"+action, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
