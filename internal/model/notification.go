package model

import (
	"time"
)

// NotificationSettings holds the delivery channels for due-date reminders of one workspace.
type NotificationSettings struct {
	WorkspaceID      uint      `gorm:"primaryKey;autoIncrement:false" json:"workspace_id"`
	Enabled          bool      `gorm:"not null;default:false" json:"enabled"`
	SlackWebhookURL  string    `json:"slack_webhook_url"`
	TelegramBotToken string    `json:"telegram_bot_token,omitempty"`
	TelegramChatID   string    `json:"telegram_chat_id"`
	UpdatedAt        time.Time `json:"updated_at"`
}
