package handler

import (
	"context"
	"net/http"
	"time"

	"ticketboard/internal/apperror"
	"ticketboard/internal/board"
	"ticketboard/internal/model"
	"ticketboard/internal/position"
	"ticketboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// TicketService is the ticket lifecycle the handlers drive.
type TicketService interface {
	Board(ctx context.Context, scope service.Scope) (*board.Board, error)
	Create(ctx context.Context, scope service.Scope, in service.TicketInput) (*model.Ticket, error)
	Update(ctx context.Context, scope service.Scope, ticketID uint, in service.TicketInput) (*model.Ticket, error)
	Delete(ctx context.Context, scope service.Scope, ticketID uint) error
	Reorder(ctx context.Context, scope service.Scope, ticketID uint, target model.Status, targetIndex int) (*model.Ticket, error)
	AttachLabel(ctx context.Context, scope service.Scope, ticketID, labelID uint) error
	DetachLabel(ctx context.Context, scope service.Scope, ticketID, labelID uint) error
	RebalanceWorkspace(ctx context.Context, workspaceID uint) (map[model.Status][]position.Placement, error)
}

// TicketReader serves the read-only ticket views.
type TicketReader interface {
	GetDetail(ctx context.Context, workspaceID, id uint) (*model.Ticket, error)
	ListChildren(ctx context.Context, workspaceID, parentID uint) ([]model.Ticket, error)
}

type labelFinder interface {
	GetByID(ctx context.Context, workspaceID, id uint) (*model.Label, error)
}

type memberFinder interface {
	Find(ctx context.Context, workspaceID, userID uint) (*model.Member, error)
}

type TicketHandler struct {
	tickets TicketService
	reader  TicketReader
	labels  labelFinder
	members memberFinder
	logger  *log.Logger
}

func NewTicketHandler(tickets TicketService, reader TicketReader, labels labelFinder, members memberFinder, logger *log.Logger) *TicketHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TicketHandler{
		tickets: tickets,
		reader:  reader,
		labels:  labels,
		members: members,
		logger:  logger,
	}
}

// TicketRequest представляет запрос на создание или обновление тикета
type TicketRequest struct {
	Title       string         `json:"title" binding:"required,max=200"`
	Description string         `json:"description" binding:"max=10000"`
	Status      model.Status   `json:"status" binding:"omitempty,ticket_status"`
	Priority    model.Priority `json:"priority" binding:"omitempty,ticket_priority"`
	DueDate     *time.Time     `json:"due_date"`
	ParentID    *uint          `json:"parent_id"`
	AssigneeID  *uint          `json:"assignee_id"`
}

// ReorderRequest представляет запрос на перемещение тикета
type ReorderRequest struct {
	TicketID     uint         `json:"ticketId" binding:"required"`
	TargetStatus model.Status `json:"targetStatus" binding:"required,ticket_status"`
	TargetIndex  *int         `json:"targetIndex" binding:"required,min=0"`
}

type TicketResponse struct {
	Ticket *model.Ticket `json:"ticket"`
}

// Board returns every ticket of the workspace grouped by status
func (h *TicketHandler) Board(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	b, err := h.tickets.Board(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Rebalance re-spaces the positions of all four columns
func (h *TicketHandler) Rebalance(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	placements, err := h.tickets.RebalanceWorkspace(c.Request.Context(), scope.WorkspaceID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	counts := make(map[model.Status]int, len(placements))
	for status, p := range placements {
		counts[status] = len(p)
	}
	c.JSON(http.StatusOK, gin.H{"rebalanced": counts})
}

// Reorder moves a ticket to a status column at the given index
func (h *TicketHandler) Reorder(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ticket, err := h.tickets.Reorder(c.Request.Context(), scope, req.TicketID, req.TargetStatus, *req.TargetIndex)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, TicketResponse{Ticket: ticket})
}

// Create creates a new ticket at the top of its column
func (h *TicketHandler) Create(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if !h.checkAssignee(c, scope, req.AssigneeID) {
		return
	}

	ticket, err := h.tickets.Create(c.Request.Context(), scope, req.input())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, TicketResponse{Ticket: ticket})
}

// GetByID returns a ticket with its labels
func (h *TicketHandler) GetByID(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	ticket, err := h.reader.GetDetail(c.Request.Context(), scope.WorkspaceID, ticketID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, TicketResponse{Ticket: ticket})
}

// Update replaces the editable fields of a ticket
func (h *TicketHandler) Update(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if !h.checkAssignee(c, scope, req.AssigneeID) {
		return
	}

	ticket, err := h.tickets.Update(c.Request.Context(), scope, ticketID, req.input())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, TicketResponse{Ticket: ticket})
}

// Delete removes a ticket
func (h *TicketHandler) Delete(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	if err := h.tickets.Delete(c.Request.Context(), scope, ticketID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Children lists the direct sub-tickets
func (h *TicketHandler) Children(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	if _, err := h.reader.GetDetail(c.Request.Context(), scope.WorkspaceID, ticketID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	children, err := h.reader.ListChildren(c.Request.Context(), scope.WorkspaceID, ticketID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": children})
}

// AddLabel attaches a workspace label to a ticket
func (h *TicketHandler) AddLabel(c *gin.Context) {
	h.changeLabel(c, true)
}

// RemoveLabel detaches a label from a ticket
func (h *TicketHandler) RemoveLabel(c *gin.Context) {
	h.changeLabel(c, false)
}

func (h *TicketHandler) changeLabel(c *gin.Context, attach bool) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}

	if _, err := h.labels.GetByID(c.Request.Context(), scope.WorkspaceID, labelID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	var err error
	if attach {
		err = h.tickets.AttachLabel(c.Request.Context(), scope, ticketID, labelID)
	} else {
		err = h.tickets.DetachLabel(c.Request.Context(), scope, ticketID, labelID)
	}
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkAssignee verifies the assignee belongs to the workspace
func (h *TicketHandler) checkAssignee(c *gin.Context, scope service.Scope, assigneeID *uint) bool {
	if assigneeID == nil {
		return true
	}
	member, err := h.members.Find(c.Request.Context(), scope.WorkspaceID, *assigneeID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return false
	}
	if member == nil {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Assignee is not a member of this workspace")
		return false
	}
	return true
}

func (r TicketRequest) input() service.TicketInput {
	return service.TicketInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		ParentID:    r.ParentID,
		AssigneeID:  r.AssigneeID,
	}
}
