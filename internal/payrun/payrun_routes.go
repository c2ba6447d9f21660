package payrun

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"fleetpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer, redisClient *redis.Client) {
	periods := r.Group("/pay-periods")
	periods.Use(middleware.Auth())
	{
		periods.POST("/materialize",
			middleware.Authorize(enforcer, "pay_run", "write"),
			middleware.Idempotency(redisClient),
			handler.Materialize,
		)
		periods.GET("", middleware.Authorize(enforcer, "pay_run", "read"), handler.ListPeriods)
		periods.GET("/:id", middleware.Authorize(enforcer, "pay_run", "read"), handler.GetPeriod)
		periods.POST("/:id/lock", middleware.Authorize(enforcer, "pay_run", "approve"), handler.LockPeriod)
		periods.GET("/:id/runs", middleware.Authorize(enforcer, "pay_run", "read"), handler.ListRunsByPeriod)
	}

	runs := r.Group("/pay-runs")
	runs.Use(middleware.Auth())
	{
		runs.GET("/:id", middleware.Authorize(enforcer, "pay_run", "read"), handler.GetRun)
		runs.POST("/:id/approve", middleware.Authorize(enforcer, "pay_run", "approve"), handler.ApproveRun)
		runs.POST("/:id/adjustments", middleware.Authorize(enforcer, "pay_run", "write"), handler.AddAdjustment)
		runs.GET("/:id/export", middleware.Authorize(enforcer, "pay_run", "read"), handler.ExportRunCSV)
	}
}
