package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"ticketboard/internal/handler"
	"ticketboard/internal/model"
	"ticketboard/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Get(ctx context.Context, workspaceID uint) (*model.NotificationSettings, error) {
	args := m.Called(ctx, workspaceID)
	s, _ := args.Get(0).(*model.NotificationSettings)
	return s, args.Error(1)
}

func (m *MockNotificationRepository) Upsert(ctx context.Context, settings *model.NotificationSettings) error {
	return m.Called(ctx, settings).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) DispatchDueTomorrow(ctx context.Context, now time.Time) (notify.Report, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(notify.Report), args.Error(1)
}

func setupNotificationRouter() (*gin.Engine, *MockNotificationRepository) {
	gin.SetMode(gin.TestMode)

	settings := new(MockNotificationRepository)
	h := handler.NewNotificationHandler(settings, quietLogger())

	r := gin.New()
	ws := r.Group("/api/workspaces/:workspaceId", asMember(ownerScope))
	ws.GET("/notifications", h.Get)
	ws.PUT("/notifications", h.Update)
	return r, settings
}

func TestGetNotificationSettings(t *testing.T) {
	router, settings := setupNotificationRouter()
	settings.On("Get", mock.Anything, uint(3)).Return(&model.NotificationSettings{WorkspaceID: 3}, nil)

	resp := doJSON(router, "GET", "/api/workspaces/3/notifications", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"enabled":false`)
}

func TestUpdateNotificationSettings(t *testing.T) {
	router, settings := setupNotificationRouter()
	settings.On("Upsert", mock.Anything, &model.NotificationSettings{
		WorkspaceID:      3,
		Enabled:          true,
		SlackWebhookURL:  "https://hooks.slack.com/services/T/B/X",
		TelegramBotToken: "123:abc",
		TelegramChatID:   "-100",
	}).Return(nil)

	resp := doJSON(router, "PUT", "/api/workspaces/3/notifications", map[string]any{
		"enabled":            true,
		"slack_webhook_url":  "https://hooks.slack.com/services/T/B/X",
		"telegram_bot_token": "123:abc",
		"telegram_chat_id":   "-100",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	settings.AssertExpectations(t)
}

func TestUpdateNotificationSettings_InvalidWebhook(t *testing.T) {
	router, settings := setupNotificationRouter()

	resp := doJSON(router, "PUT", "/api/workspaces/3/notifications", map[string]any{"slack_webhook_url": "not a url"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCronNotifyDue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dispatcher := new(MockDispatcher)
	dispatcher.On("DispatchDueTomorrow", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(notify.Report{Workspaces: 2, Sent: 3, Failed: 1}, nil).Once()
	dispatcher.On("DispatchDueTomorrow", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(notify.Report{}, errors.New("db down")).Once()

	r := gin.New()
	r.POST("/api/cron/notify-due", handler.NewCronHandler(dispatcher, quietLogger()).NotifyDue)

	resp := doJSON(r, "POST", "/api/cron/notify-due", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"sent":3`)

	resp = doJSON(r, "POST", "/api/cron/notify-due", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
