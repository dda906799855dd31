package handler_test

import (
	"io"

	"ticketboard/internal/middleware"
	"ticketboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

// asMember stands in for the auth and membership middleware.
func asMember(scope service.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, scope.UserID)
		c.Set(middleware.ScopeKey, scope)
		c.Next()
	}
}

func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}
