package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketboard/internal/auth"
	"ticketboard/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	logger := log.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		ServerPort:      "0",
		JWTSecret:       "server-test-secret",
		JWTExpiryHours:  1,
		BoardCacheTTL:   time.Minute,
		NotifyTimeout:   time.Second,
		NotifyTimezone:  "UTC",
		RebalanceMinGap: 2,
	}
	return New(cfg, gormDB, nil, logger), mock
}

func serve(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestRoutes_Public(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, serve(s, "GET", "/healthz", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(s, "POST", "/api/auth/login", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, "GET", "/api/workspaces", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, "GET", "/api/workspaces/1/board", "").Code)
	// CRON_SECRET is empty, so the scheduler endpoint stays closed
	assert.Equal(t, http.StatusUnauthorized, serve(s, "POST", "/api/cron/notify-due", "anything").Code)
}

func TestRoutes_BoardForMember(t *testing.T) {
	s, mock := newTestServer(t)
	token, err := auth.NewTokenIssuer("server-test-secret", 1).GenerateToken(5)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).AddRow(8, 1, 5, "viewer"))
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "title", "status", "priority", "position", "created_by"}))

	resp := serve(s, "GET", "/api/workspaces/1/board", token)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"board":{"BACKLOG":[],"TODO":[],"IN_PROGRESS":[],"DONE":[]},"total":0}`, resp.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_ViewerCannotReorder(t *testing.T) {
	s, mock := newTestServer(t)
	token, err := auth.NewTokenIssuer("server-test-secret", 1).GenerateToken(5)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).AddRow(8, 1, 5, "viewer"))

	resp := serve(s, "PATCH", "/api/workspaces/1/tickets/reorder", token)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_NotificationSettingsAreOwnerOnly(t *testing.T) {
	token, err := auth.NewTokenIssuer("server-test-secret", 1).GenerateToken(5)
	require.NoError(t, err)

	for _, role := range []string{"viewer", "editor"} {
		t.Run(role, func(t *testing.T) {
			s, mock := newTestServer(t)
			mock.ExpectQuery(`SELECT \* FROM "members"`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).AddRow(8, 1, 5, role))

			resp := serve(s, "PUT", "/api/workspaces/1/notifications", token)

			assert.Equal(t, http.StatusForbidden, resp.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("owner", func(t *testing.T) {
		s, mock := newTestServer(t)
		mock.ExpectQuery(`SELECT \* FROM "members"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).AddRow(8, 1, 5, "owner"))
		mock.ExpectQuery(`SELECT .* FROM "notification`).
			WillReturnRows(sqlmock.NewRows([]string{"workspace_id", "enabled"}))

		resp := serve(s, "GET", "/api/workspaces/1/notifications", token)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"workspace_id":1`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoutes_NonMemberGetsWorkspaceNotFound(t *testing.T) {
	s, mock := newTestServer(t)
	token, err := auth.NewTokenIssuer("server-test-secret", 1).GenerateToken(5)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}))

	resp := serve(s, "GET", "/api/workspaces/1/board", token)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "WORKSPACE_NOT_FOUND")
}
