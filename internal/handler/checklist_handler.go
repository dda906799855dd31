package handler

import (
	"net/http"

	"ticketboard/internal/model"
	"ticketboard/internal/position"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type ChecklistItemRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// ChecklistItemUpdateRequest carries the fields to change; absent fields stay as they are.
type ChecklistItemUpdateRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=200"`
	Done  *bool   `json:"done"`
}

type ChecklistHandler struct {
	items   repository.ChecklistRepositoryInterface
	tickets ticketFinder
	logger  *log.Logger
}

func NewChecklistHandler(items repository.ChecklistRepositoryInterface, tickets ticketFinder, logger *log.Logger) *ChecklistHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ChecklistHandler{items: items, tickets: tickets, logger: logger}
}

// GetAll lists a ticket's checklist in order
func (h *ChecklistHandler) GetAll(c *gin.Context) {
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
	items, err := h.items.ListByTicket(c.Request.Context(), ticketID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create appends an item to the end of the checklist
func (h *ChecklistHandler) Create(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if _, err := h.tickets.GetByID(c.Request.Context(), scope.WorkspaceID, ticketID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	last, err := h.items.GetMaxPosition(c.Request.Context(), ticketID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	item := &model.ChecklistItem{
		TicketID: ticketID,
		Title:    req.Title,
		Position: position.CalculatePosition(last, nil),
	}
	if err := h.items.Create(c.Request.Context(), item); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update edits the title or toggles completion of an item
func (h *ChecklistHandler) Update(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req ChecklistItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	item, err := h.items.GetByID(c.Request.Context(), scope.WorkspaceID, itemID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Done != nil {
		item.Done = *req.Done
	}

	if err := h.items.Update(c.Request.Context(), item); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes a checklist item
func (h *ChecklistHandler) Delete(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if _, err := h.items.GetByID(c.Request.Context(), scope.WorkspaceID, itemID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if err := h.items.Delete(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
