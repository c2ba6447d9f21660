package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"fleetpay/internal/shared/apperror"
	"fleetpay/internal/shared/response"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency guards POST endpoints against double submission. A request
// carrying an Idempotency-Key takes a short-lived Redis lock; a concurrent
// duplicate gets 409 instead of a second execution. The lock expires on its
// own, so a crashed request never wedges the key.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), userID, idempKey)

		acquired, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis being down must not block payroll operations.
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"a request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		c.Next()

		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
