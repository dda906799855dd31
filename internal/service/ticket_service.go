package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ticketboard/internal/board"
	"ticketboard/internal/model"
	"ticketboard/internal/position"
	"ticketboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

// maxHierarchyDepth bounds the ancestor walk done when re-parenting a ticket.
const maxHierarchyDepth = 64

// BoardSource serves board snapshots and drops them after a ticket mutation.
type BoardSource interface {
	Board(ctx context.Context, workspaceID uint) (*board.Board, error)
	Invalidate(ctx context.Context, workspaceID uint)
}

// LabelLinker attaches and detaches workspace labels on tickets.
type LabelLinker interface {
	AddLabel(ctx context.Context, ticketID, labelID uint) error
	RemoveLabel(ctx context.Context, ticketID, labelID uint) error
}

// TicketInput carries the editable fields of a ticket.
type TicketInput struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	DueDate     *time.Time
	ParentID    *uint
	AssigneeID  *uint
}

type TicketService struct {
	store  repository.TicketStore
	boards BoardSource
	labels LabelLinker
	minGap int64
	logger *log.Logger
	now    func() time.Time
}

func NewTicketService(store repository.TicketStore, boards BoardSource, minGap int64, logger *log.Logger) *TicketService {
	if minGap < position.DefaultMinGap {
		minGap = position.DefaultMinGap
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TicketService{
		store:  store,
		boards: boards,
		minGap: minGap,
		logger: logger,
		now:    time.Now,
	}
}

// Reorder moves a ticket to targetIndex of the target column.
//
// The destination column is read without the moving ticket, so reordering inside one column sees the
// same neighbours the user saw. The lookup, neighbour read and write happen in one locking transaction.
func (s *TicketService) Reorder(ctx context.Context, scope Scope, ticketID uint, target model.Status, targetIndex int) (*model.Ticket, error) {
	if ticketID == 0 {
		return nil, invalid("ticketId", "must be a positive integer")
	}
	if !target.Valid() {
		return nil, invalid("targetStatus", "must be one of BACKLOG, TODO, IN_PROGRESS, DONE")
	}
	if targetIndex < 0 {
		return nil, invalid("targetIndex", "must not be negative")
	}

	var updated *model.Ticket
	err := s.store.WithinTx(ctx, func(tx repository.TicketStore) error {
		ticket, err := tx.GetByID(ctx, scope.WorkspaceID, ticketID)
		if err != nil {
			return err
		}

		column, err := tx.GetColumnTickets(ctx, scope.WorkspaceID, target, ticket.ID)
		if err != nil {
			return err
		}

		pos, err := s.allocate(ctx, tx, scope.WorkspaceID, column, targetIndex)
		if err != nil {
			return err
		}

		ticket.ApplyStatus(target, s.now())
		ticket.Position = pos
		if err := tx.UpdatePlacement(ctx, ticket); err != nil {
			return err
		}
		updated = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, scope.WorkspaceID)
	s.logger.WithFields(log.Fields{
		"workspace_id": scope.WorkspaceID,
		"ticket_id":    updated.ID,
		"status":       updated.Status,
		"position":     updated.Position,
	}).Debug("ticket reordered")
	return updated, nil
}

// allocate picks the position for index in column. When the neighbours are too close to split, the
// column is rebalanced first, inside the caller's transaction.
func (s *TicketService) allocate(ctx context.Context, tx repository.TicketStore, workspaceID uint, column []model.Ticket, index int) (int64, error) {
	positions := make([]int64, len(column))
	for i, t := range column {
		positions[i] = t.Position
	}

	above, below := position.Between(positions, index)
	if position.NeedsRebalance(above, below, s.minGap) {
		placements := make([]position.Placement, len(column))
		for i, t := range column {
			placements[i] = position.Placement{ID: t.ID, Position: t.Position}
		}
		placements = position.Rebalance(placements)
		if err := tx.UpdatePositions(ctx, workspaceID, placements); err != nil {
			return 0, err
		}
		for i, p := range placements {
			positions[i] = p.Position
		}
		s.logger.WithFields(log.Fields{
			"workspace_id": workspaceID,
			"tickets":      len(placements),
		}).Info("column rebalanced before allocation")
		above, below = position.Between(positions, index)
	}

	return position.CalculatePosition(above, below), nil
}

// WithLabels enables AttachLabel and DetachLabel.
func (s *TicketService) WithLabels(labels LabelLinker) *TicketService {
	s.labels = labels
	return s
}

// Board returns the workspace's tickets grouped into the four status columns.
func (s *TicketService) Board(ctx context.Context, scope Scope) (*board.Board, error) {
	return s.boards.Board(ctx, scope.WorkspaceID)
}

// Create stores a new ticket at the top of its column. Status defaults to BACKLOG.
func (s *TicketService) Create(ctx context.Context, scope Scope, in TicketInput) (*model.Ticket, error) {
	if in.Status == "" {
		in.Status = model.StatusBacklog
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	in, err := normalise(in)
	if err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		WorkspaceID: scope.WorkspaceID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ParentID:    in.ParentID,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   scope.UserID,
	}

	err = s.store.WithinTx(ctx, func(tx repository.TicketStore) error {
		if in.ParentID != nil {
			if err := s.checkParent(ctx, tx, scope.WorkspaceID, 0, *in.ParentID); err != nil {
				return err
			}
		}

		column, err := tx.GetColumnTickets(ctx, scope.WorkspaceID, in.Status, 0)
		if err != nil {
			return err
		}
		pos, err := s.allocate(ctx, tx, scope.WorkspaceID, column, 0)
		if err != nil {
			return err
		}

		ticket.ApplyStatus(in.Status, s.now())
		ticket.Position = pos
		return tx.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, scope.WorkspaceID)
	return ticket, nil
}

// Update replaces the editable fields of a ticket. An empty status or priority keeps the current value.
// A status change appends the ticket to the end of its new column and applies the completion rule.
func (s *TicketService) Update(ctx context.Context, scope Scope, ticketID uint, in TicketInput) (*model.Ticket, error) {
	in, err := normalise(in)
	if err != nil {
		return nil, err
	}

	var updated *model.Ticket
	err = s.store.WithinTx(ctx, func(tx repository.TicketStore) error {
		ticket, err := tx.GetByID(ctx, scope.WorkspaceID, ticketID)
		if err != nil {
			return err
		}

		if in.ParentID != nil {
			if err := s.checkParent(ctx, tx, scope.WorkspaceID, ticket.ID, *in.ParentID); err != nil {
				return err
			}
		}
		if in.Status == "" {
			in.Status = ticket.Status
		}
		if in.Priority == "" {
			in.Priority = ticket.Priority
		}

		if in.Status != ticket.Status {
			column, err := tx.GetColumnTickets(ctx, scope.WorkspaceID, in.Status, ticket.ID)
			if err != nil {
				return err
			}
			pos, err := s.allocate(ctx, tx, scope.WorkspaceID, column, len(column))
			if err != nil {
				return err
			}
			ticket.ApplyStatus(in.Status, s.now())
			ticket.Position = pos
		}

		ticket.Title = in.Title
		ticket.Description = in.Description
		ticket.Priority = in.Priority
		ticket.DueDate = in.DueDate
		ticket.ParentID = in.ParentID
		ticket.AssigneeID = in.AssigneeID
		ticket.Labels = nil

		if err := tx.Update(ctx, ticket); err != nil {
			return err
		}
		updated = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, scope.WorkspaceID)
	return updated, nil
}

// Delete removes a ticket; its sub-tickets become top level.
func (s *TicketService) Delete(ctx context.Context, scope Scope, ticketID uint) error {
	if err := s.store.Delete(ctx, scope.WorkspaceID, ticketID); err != nil {
		return err
	}
	s.invalidate(ctx, scope.WorkspaceID)
	return nil
}

// AttachLabel links a label to a ticket of the scope's workspace. The label must already be known to
// belong to the same workspace.
func (s *TicketService) AttachLabel(ctx context.Context, scope Scope, ticketID, labelID uint) error {
	return s.linkLabel(ctx, scope, ticketID, labelID, true)
}

func (s *TicketService) DetachLabel(ctx context.Context, scope Scope, ticketID, labelID uint) error {
	return s.linkLabel(ctx, scope, ticketID, labelID, false)
}

func (s *TicketService) linkLabel(ctx context.Context, scope Scope, ticketID, labelID uint, attach bool) error {
	if s.labels == nil {
		return errors.New("label linking is not configured")
	}
	if _, err := s.store.GetByID(ctx, scope.WorkspaceID, ticketID); err != nil {
		return err
	}

	var err error
	if attach {
		err = s.labels.AddLabel(ctx, ticketID, labelID)
	} else {
		err = s.labels.RemoveLabel(ctx, ticketID, labelID)
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, scope.WorkspaceID)
	return nil
}

// RebalanceColumn re-spaces every ticket of one column Gap apart, keeping the current order.
func (s *TicketService) RebalanceColumn(ctx context.Context, workspaceID uint, status model.Status) ([]position.Placement, error) {
	if !status.Valid() {
		return nil, invalid("status", "must be one of BACKLOG, TODO, IN_PROGRESS, DONE")
	}

	var placements []position.Placement
	err := s.store.WithinTx(ctx, func(tx repository.TicketStore) error {
		column, err := tx.GetColumnTickets(ctx, workspaceID, status, 0)
		if err != nil {
			return err
		}
		current := make([]position.Placement, len(column))
		for i, t := range column {
			current[i] = position.Placement{ID: t.ID, Position: t.Position}
		}
		placements = position.SortAndRebalance(current)
		return tx.UpdatePositions(ctx, workspaceID, placements)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, workspaceID)
	s.logger.WithFields(log.Fields{
		"workspace_id": workspaceID,
		"status":       status,
		"tickets":      len(placements),
	}).Info("column rebalanced")
	return placements, nil
}

// RebalanceWorkspace rebalances all four columns of a workspace.
func (s *TicketService) RebalanceWorkspace(ctx context.Context, workspaceID uint) (map[model.Status][]position.Placement, error) {
	out := make(map[model.Status][]position.Placement, len(model.Statuses))
	for _, status := range model.Statuses {
		placements, err := s.RebalanceColumn(ctx, workspaceID, status)
		if err != nil {
			return nil, err
		}
		out[status] = placements
	}
	return out, nil
}

// checkParent verifies parentID exists in the workspace and that making it the parent of ticketID
// would not close a loop. ticketID is 0 for tickets that do not exist yet.
func (s *TicketService) checkParent(ctx context.Context, tx repository.TicketStore, workspaceID, ticketID, parentID uint) error {
	if parentID == ticketID {
		return invalid("parentId", "a ticket cannot be its own parent")
	}

	current := parentID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		parent, err := tx.GetByID(ctx, workspaceID, current)
		if errors.Is(err, repository.ErrTicketNotFound) {
			if current == parentID {
				return ErrParentNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if ticketID != 0 && *parent.ParentID == ticketID {
			return invalid("parentId", "would create a cycle")
		}
		current = *parent.ParentID
	}
	return invalid("parentId", "hierarchy is too deep")
}

func (s *TicketService) invalidate(ctx context.Context, workspaceID uint) {
	s.boards.Invalidate(ctx, workspaceID)
}

// normalise trims the title and checks the enums. Empty enums are left for the caller to fill in.
func normalise(in TicketInput) (TicketInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, invalid("title", "is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return in, invalid("status", "must be one of BACKLOG, TODO, IN_PROGRESS, DONE")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return in, invalid("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
	}
	return in, nil
}
