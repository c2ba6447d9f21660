package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"fleetpay/internal/middleware"
)

func performPost(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay-periods/materialize", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyAcquiresAndReleasesLock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	lockKey := "idemp:/pay-periods/materialize::abc123:lock"
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	mock.ExpectDel(lockKey).SetVal(1)

	router := gin.New()
	router.POST("/pay-periods/materialize", middleware.Idempotency(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performPost(router, "abc123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRejectsConcurrentDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	lockKey := "idemp:/pay-periods/materialize::abc123:lock"
	mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

	handlerCalled := false
	router := gin.New()
	router.POST("/pay-periods/materialize", middleware.Idempotency(db), func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := performPost(router, "abc123")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, handlerCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	router := gin.New()
	router.POST("/pay-periods/materialize", middleware.Idempotency(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performPost(router, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
