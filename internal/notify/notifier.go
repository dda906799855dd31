// Package notify delivers due-date reminders to the chat channels configured per workspace.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ticketboard/internal/model"

	"github.com/bytedance/sonic"
)

// Notifier sends one plain-text message to a channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, settings model.NotificationSettings, text string) error
}

// SlackNotifier posts to an incoming webhook.
type SlackNotifier struct {
	client *http.Client
}

func NewSlackNotifier(client *http.Client) *SlackNotifier {
	if client == nil {
		client = &http.Client{}
	}
	return &SlackNotifier{client: client}
}

func (n *SlackNotifier) Name() string { return "slack" }

func (n *SlackNotifier) Notify(ctx context.Context, settings model.NotificationSettings, text string) error {
	if settings.SlackWebhookURL == "" {
		return ErrChannelNotConfigured
	}
	return postJSON(ctx, n.client, n.Name(), settings.SlackWebhookURL, map[string]string{"text": text})
}

// TelegramNotifier uses the Bot API sendMessage method.
type TelegramNotifier struct {
	baseURL string
	client  *http.Client
}

func NewTelegramNotifier(baseURL string, client *http.Client) *TelegramNotifier {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	if client == nil {
		client = &http.Client{}
	}
	return &TelegramNotifier{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (n *TelegramNotifier) Name() string { return "telegram" }

func (n *TelegramNotifier) Notify(ctx context.Context, settings model.NotificationSettings, text string) error {
	if settings.TelegramBotToken == "" || settings.TelegramChatID == "" {
		return ErrChannelNotConfigured
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, settings.TelegramBotToken)
	return postJSON(ctx, n.client, n.Name(), endpoint, map[string]string{
		"chat_id": settings.TelegramChatID,
		"text":    text,
	})
}

// postJSON never returns the endpoint in its errors: webhook paths and bot tokens are credentials.
func postJSON(ctx context.Context, client *http.Client, channel, endpoint string, body any) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request failed", channel)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("%s request failed: %w", channel, uerr.Err)
		}
		return fmt.Errorf("%s request failed", channel)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", channel, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
