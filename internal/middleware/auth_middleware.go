package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"ticketboard/internal/apperror"
	"ticketboard/internal/auth"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "userID"

// JWTAuthMiddleware requires a valid bearer token and stores the user id (uint) under UserIDKey.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	issuer := auth.NewTokenIssuer(jwtSecret, 0)

	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		raw, err := issuer.ParseToken(token)
		if err != nil {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid user ID in token")
			return
		}

		c.Set(UserIDKey, uint(userID))
		c.Next()
	}
}

// CronAuthMiddleware guards scheduler endpoints with a shared secret. An empty secret disables them.
func CronAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Cron endpoints are disabled")
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid cron secret")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authorization header is required")
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authorization header format must be Bearer {token}")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
