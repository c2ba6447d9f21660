package driverrate

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"fleetpay/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	rates := r.Group("/driver-rates")
	rates.Use(middleware.Auth())
	{
		rates.POST("", middleware.Authorize(enforcer, "driver_rate", "write"), handler.Create)
		rates.PUT("/:id", middleware.Authorize(enforcer, "driver_rate", "write"), handler.Update)
		rates.GET("/:id", middleware.Authorize(enforcer, "driver_rate", "read"), handler.GetById)
		rates.GET("/driver/:driverId", middleware.Authorize(enforcer, "driver_rate", "read"), handler.ListByDriver)
		rates.GET("/driver/:driverId/resolve", middleware.Authorize(enforcer, "driver_rate", "read"), handler.ResolveAt)
	}
}
