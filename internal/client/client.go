// Package client talks to the ticketboard HTTP API and keeps a board view in step with it.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ticketboard/internal/board"
	"ticketboard/internal/model"

	"github.com/bytedance/sonic"
)

// APIError is a non-2xx answer carrying the server's {"error":{"code","message"}} body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type reorderRequest struct {
	TicketID     uint         `json:"ticketId"`
	TargetStatus model.Status `json:"targetStatus"`
	TargetIndex  int          `json:"targetIndex"`
}

type ticketResponse struct {
	Ticket model.Ticket `json:"ticket"`
}

// Client wraps http.Client with the bearer token of one user.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Token: token, HTTP: &http.Client{}}
}

// FetchBoard loads the grouped board of a workspace.
func (c *Client) FetchBoard(ctx context.Context, workspaceID uint) (*board.Board, error) {
	b := board.New()
	if err := c.do(ctx, http.MethodGet, workspacePath(workspaceID, "/board"), nil, b); err != nil {
		return nil, err
	}
	for _, s := range model.Statuses {
		if b.Columns[s] == nil {
			b.Columns[s] = []model.Ticket{}
		}
	}
	return b, nil
}

// Reorder asks the server to move a ticket and returns the persisted result.
func (c *Client) Reorder(ctx context.Context, workspaceID, ticketID uint, target model.Status, targetIndex int) (*model.Ticket, error) {
	var out ticketResponse
	body := reorderRequest{TicketID: ticketID, TargetStatus: target, TargetIndex: targetIndex}
	if err := c.do(ctx, http.MethodPatch, workspacePath(workspaceID, "/tickets/reorder"), body, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "INTERNAL_ERROR", Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if sonic.Unmarshal(data, &eb) == nil && eb.Error.Code != "" {
			apiErr.Code = eb.Error.Code
			apiErr.Message = eb.Error.Message
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		return sonic.Unmarshal(data, out)
	}
	return nil
}

func workspacePath(workspaceID uint, suffix string) string {
	return "/api/workspaces/" + strconv.FormatUint(uint64(workspaceID), 10) + suffix
}
