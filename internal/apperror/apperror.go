// Package apperror defines the JSON error envelope every API response uses.
package apperror

import (
	"github.com/gin-gonic/gin"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeTicketNotFound    = "TICKET_NOT_FOUND"
	CodeWorkspaceNotFound = "WORKSPACE_NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// Body is the {"error":{"code","message"}} envelope.
type Body struct {
	Error Detail `json:"error"`
}

type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(code, message string) Body {
	return Body{Error: Detail{Code: code, Message: message}}
}

// Respond writes the envelope and lets the handler chain continue.
func Respond(c *gin.Context, status int, code, message string) {
	c.JSON(status, New(code, message))
}

// Abort writes the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, New(code, message))
}
