package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fleetpay/internal/driverrate"
	"fleetpay/internal/messaging/kafka"
	"fleetpay/internal/payrollconfig"
	"fleetpay/internal/payrun"
	"fleetpay/internal/rbac"
	"fleetpay/internal/route"
	"fleetpay/internal/warehouse"
)

func registerModules(router *gin.Engine, db *gorm.DB, rdb *redis.Client) error {
	// --- Repositories ---
	rateRepo := driverrate.NewRepository(db)
	configRepo := payrollconfig.NewRepository(db)
	payrunRepo := payrun.NewRepository(db)
	routeRepo := route.NewRepository(db)
	warehouseRepo := warehouse.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	rateService := driverrate.NewService(db, rateRepo)
	configService := payrollconfig.NewService(db, configRepo)
	payrunService := payrun.NewService(
		db,
		payrunRepo,
		rateService,
		routeRepo,
		warehouseRepo,
		configService,
		outboxRepo,
	)

	// --- Handlers ---
	rateHandler := driverrate.NewHandler(rateService)
	configHandler := payrollconfig.NewHandler(configService)
	payrunHandler := payrun.NewHandler(payrunService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		driverrate.RegisterRoutes(api, rateHandler, enforcer)
		payrollconfig.RegisterRoutes(api, configHandler, enforcer)
		payrun.RegisterRoutes(api, payrunHandler, enforcer, rdb)
	}

	return nil
}
