package handler

import (
	"context"
	"net/http"

	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// LabelRequest defines the expected request body for creating or updating a label
type LabelRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"required,hexcolor"`
}

type boardInvalidator interface {
	Invalidate(ctx context.Context, workspaceID uint)
}

// LabelHandler handles label-related HTTP requests
type LabelHandler struct {
	labelRepo repository.LabelRepositoryInterface
	boards    boardInvalidator
	logger    *log.Logger
}

// NewLabelHandler creates a new LabelHandler instance
func NewLabelHandler(labelRepo repository.LabelRepositoryInterface, boards boardInvalidator, logger *log.Logger) *LabelHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LabelHandler{labelRepo: labelRepo, boards: boards, logger: logger}
}

// Create creates a new label
func (h *LabelHandler) Create(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	label := &model.Label{
		WorkspaceID: scope.WorkspaceID,
		Name:        req.Name,
		Color:       req.Color,
	}
	if err := h.labelRepo.Create(c.Request.Context(), label); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

// GetAll lists the labels of the workspace
func (h *LabelHandler) GetAll(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	labels, err := h.labelRepo.GetByWorkspaceID(c.Request.Context(), scope.WorkspaceID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// Update renames or recolours a label
func (h *LabelHandler) Update(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	label := &model.Label{ID: labelID, WorkspaceID: scope.WorkspaceID, Name: req.Name, Color: req.Color}
	if err := h.labelRepo.Update(c.Request.Context(), label); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	// Labels are embedded in board snapshots
	h.boards.Invalidate(c.Request.Context(), scope.WorkspaceID)
	c.JSON(http.StatusOK, label)
}

// Delete removes a label
func (h *LabelHandler) Delete(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}

	if err := h.labelRepo.Delete(c.Request.Context(), scope.WorkspaceID, labelID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	h.boards.Invalidate(c.Request.Context(), scope.WorkspaceID)
	c.Status(http.StatusNoContent)
}
