package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketboard/internal/middleware"
	"ticketboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Защищенный маршрут
	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := middleware.UserID(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
		})
	})

	return r
}

func generateTestToken(userID string, secret string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))

	return tokenString
}

func serve(r *gin.Engine, method, path, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := setupRouter()
	token := generateTestToken("17", jwtSecret)

	resp := serve(router, "GET", "/protected/resource", "Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), `"user_id":17`)
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter()

	// Запрос без заголовка авторизации
	resp := serve(router, "GET", "/protected/resource", "")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
	assert.Contains(t, resp.Body.String(), `"code":"UNAUTHORIZED"`)
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter()

	resp := serve(router, "GET", "/protected/resource", "InvalidFormat token123")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter()

	resp := serve(router, "GET", "/protected/resource", "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidUserID(t *testing.T) {
	router := setupRouter()

	// Токен с нечисловым ID пользователя
	token := generateTestToken("not-a-number", jwtSecret)

	resp := serve(router, "GET", "/protected/resource", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid user ID in token")
}

func TestCronAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newRouter := func(secret string) *gin.Engine {
		r := gin.New()
		r.POST("/cron", middleware.CronAuthMiddleware(secret), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	assert.Equal(t, http.StatusNoContent, serve(newRouter("s3cret"), "POST", "/cron", "Bearer s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter("s3cret"), "POST", "/cron", "Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(""), "POST", "/cron", "Bearer ").Code)
}

type stubMembers struct {
	member *model.Member
	err    error
}

func (s stubMembers) Find(_ context.Context, workspaceID, userID uint) (*model.Member, error) {
	if s.member == nil || s.err != nil {
		return nil, s.err
	}
	if s.member.WorkspaceID != workspaceID || s.member.UserID != userID {
		return nil, nil
	}
	return s.member, nil
}

func workspaceRouter(members stubMembers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New()
	logger.SetLevel(log.PanicLevel)

	r := gin.New()
	ws := r.Group("/workspaces/:workspaceId")
	ws.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.WorkspaceMember(members, logger))
	ws.GET("/board", func(c *gin.Context) {
		scope, _ := middleware.ScopeFrom(c)
		c.JSON(http.StatusOK, gin.H{"workspace_id": scope.WorkspaceID, "member_id": scope.MemberID})
	})
	ws.POST("/tickets", middleware.RequireRole(model.RoleEditor), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestWorkspaceMember(t *testing.T) {
	viewer := &model.Member{ID: 3, WorkspaceID: 5, UserID: 17, Role: model.RoleViewer}
	editor := &model.Member{ID: 4, WorkspaceID: 5, UserID: 17, Role: model.RoleEditor}
	bearer := "Bearer " + generateTestToken("17", jwtSecret)

	t.Run("member gets scope", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{member: viewer}), "GET", "/workspaces/5/board", bearer)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"workspace_id":5,"member_id":3}`, resp.Body.String())
	})

	t.Run("non member sees not found", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{member: viewer}), "GET", "/workspaces/6/board", bearer)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), "WORKSPACE_NOT_FOUND")
	})

	t.Run("malformed id", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{member: viewer}), "GET", "/workspaces/abc/board", bearer)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("lookup failure", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{err: errors.New("boom")}), "GET", "/workspaces/5/board", bearer)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})

	t.Run("viewer cannot write", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{member: viewer}), "POST", "/workspaces/5/tickets", bearer)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "FORBIDDEN")
	})

	t.Run("editor can write", func(t *testing.T) {
		resp := serve(workspaceRouter(stubMembers{member: editor}), "POST", "/workspaces/5/tickets", bearer)

		assert.Equal(t, http.StatusCreated, resp.Code)
	})
}
