package handler

import (
	"context"
	"net/http"
	"time"

	"ticketboard/internal/model"
	"ticketboard/internal/notify"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type NotificationSettingsRequest struct {
	Enabled          bool   `json:"enabled"`
	SlackWebhookURL  string `json:"slack_webhook_url" binding:"omitempty,url"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`
}

type NotificationHandler struct {
	settings repository.NotificationRepositoryInterface
	logger   *log.Logger
}

func NewNotificationHandler(settings repository.NotificationRepositoryInterface, logger *log.Logger) *NotificationHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &NotificationHandler{settings: settings, logger: logger}
}

// Get returns the workspace's notification channels
func (h *NotificationHandler) Get(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	settings, err := h.settings.Get(c.Request.Context(), scope.WorkspaceID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update replaces the workspace's notification channels
func (h *NotificationHandler) Update(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	var req NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	settings := &model.NotificationSettings{
		WorkspaceID:      scope.WorkspaceID,
		Enabled:          req.Enabled,
		SlackWebhookURL:  req.SlackWebhookURL,
		TelegramBotToken: req.TelegramBotToken,
		TelegramChatID:   req.TelegramChatID,
	}
	if err := h.settings.Upsert(c.Request.Context(), settings); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type dueDispatcher interface {
	DispatchDueTomorrow(ctx context.Context, now time.Time) (notify.Report, error)
}

type CronHandler struct {
	dispatcher dueDispatcher
	logger     *log.Logger
}

func NewCronHandler(dispatcher dueDispatcher, logger *log.Logger) *CronHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CronHandler{dispatcher: dispatcher, logger: logger}
}

// NotifyDue sends reminders for tickets due tomorrow
func (h *CronHandler) NotifyDue(c *gin.Context) {
	report, err := h.dispatcher.DispatchDueTomorrow(c.Request.Context(), time.Now())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
