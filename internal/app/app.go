package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetpay/internal/middleware"
	"fleetpay/internal/shared/connection"
)

// BuildApp wires infrastructure and registers every module's routes on the
// router.
func BuildApp(router *gin.Engine) error {
	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, db, redisClient)
}
