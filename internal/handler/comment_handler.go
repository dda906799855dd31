package handler

import (
	"context"
	"net/http"
	"strings"

	"ticketboard/internal/apperror"
	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}

// ticketFinder checks that a ticket exists in the caller's workspace.
type ticketFinder interface {
	GetByID(ctx context.Context, workspaceID, id uint) (*model.Ticket, error)
}

type CommentHandler struct {
	comments repository.CommentRepositoryInterface
	tickets  ticketFinder
	logger   *log.Logger
}

func NewCommentHandler(comments repository.CommentRepositoryInterface, tickets ticketFinder, logger *log.Logger) *CommentHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CommentHandler{comments: comments, tickets: tickets, logger: logger}
}

// GetAll lists the comments of a ticket, oldest first
func (h *CommentHandler) GetAll(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	if _, err := h.tickets.GetByID(c.Request.Context(), scope.WorkspaceID, ticketID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	comments, err := h.comments.ListByTicket(c.Request.Context(), ticketID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create adds a comment authored by the caller
func (h *CommentHandler) Create(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Comment body is required")
		return
	}

	if _, err := h.tickets.GetByID(c.Request.Context(), scope.WorkspaceID, ticketID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	comment := &model.Comment{TicketID: ticketID, AuthorID: scope.UserID, Body: body}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete removes a comment. Only its author or the workspace owner may do so.
func (h *CommentHandler) Delete(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), scope.WorkspaceID, commentID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if comment.AuthorID != scope.UserID && scope.Role != model.RoleOwner {
		respondError(c, http.StatusForbidden, apperror.CodeForbidden, "Only the author can delete this comment")
		return
	}

	if err := h.comments.Delete(c.Request.Context(), commentID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
