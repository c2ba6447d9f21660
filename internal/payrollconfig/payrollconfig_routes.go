package payrollconfig

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"fleetpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	configs := r.Group("/payroll-configs")
	configs.Use(middleware.Auth())
	{
		configs.POST("", middleware.Authorize(enforcer, "payroll_config", "write"), handler.CreateConfig)
		configs.PUT("/:id", middleware.Authorize(enforcer, "payroll_config", "write"), handler.UpdateConfig)
		configs.GET("/warehouse/:warehouseId", middleware.Authorize(enforcer, "payroll_config", "read"), handler.GetByWarehouse)

		configs.POST("/:id/weight-rules", middleware.Authorize(enforcer, "payroll_config", "write"), handler.AddWeightRule)
		configs.POST("/:id/penalty-rules", middleware.Authorize(enforcer, "payroll_config", "write"), handler.AddPenaltyRule)
		configs.POST("/:id/bonus-rules", middleware.Authorize(enforcer, "payroll_config", "write"), handler.AddBonusRule)
		configs.DELETE("/:id/weight-rules/:ruleId", middleware.Authorize(enforcer, "payroll_config", "write"), handler.RemoveWeightRule)
		configs.DELETE("/:id/penalty-rules/:ruleId", middleware.Authorize(enforcer, "payroll_config", "write"), handler.RemovePenaltyRule)
		configs.DELETE("/:id/bonus-rules/:ruleId", middleware.Authorize(enforcer, "payroll_config", "write"), handler.RemoveBonusRule)
	}
}
