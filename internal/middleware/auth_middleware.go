package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fleetpay/internal/shared/apperror"
	"fleetpay/internal/shared/contextutil"
	"fleetpay/internal/shared/response"
)

// Auth validates the bearer token and stashes the caller's identity on the
// gin context: user_id, company_id, role. Every protected handler reads
// company_id from here, never from the request body.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			msg := "invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "token expired"
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "invalid token claims", nil)
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(string)
		companyID, _ := claims["company_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || companyID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "token missing identity claims", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("company_id", companyID)
		c.Set("role", role)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
