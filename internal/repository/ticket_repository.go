package repository

import (
	"context"
	"errors"
	"time"

	"ticketboard/internal/model"
	"ticketboard/internal/position"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketStore is the ticket persistence the ordering logic works against.
// Every lookup is scoped to a workspace.
type TicketStore interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, workspaceID, id uint) (*model.Ticket, error)
	GetColumnTickets(ctx context.Context, workspaceID uint, status model.Status, excludeID uint) ([]model.Ticket, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	UpdatePlacement(ctx context.Context, ticket *model.Ticket) error
	UpdatePositions(ctx context.Context, workspaceID uint, placements []position.Placement) error
	Delete(ctx context.Context, workspaceID, id uint) error
	// WithinTx runs fn against a store bound to one transaction whose reads take row locks.
	WithinTx(ctx context.Context, fn func(TicketStore) error) error
}

var _ TicketStore = (*TicketRepository)(nil)

type TicketRepository struct {
	db *gorm.DB
	// forUpdate is set on transaction-bound copies so reads lock the rows they return
	forUpdate bool
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// WithinTx runs fn in a transaction. Reads made through the store passed to fn use SELECT ... FOR UPDATE,
// so concurrent reorders into the same column serialise instead of computing positions from stale neighbours.
func (r *TicketRepository) WithinTx(ctx context.Context, fn func(TicketStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TicketRepository{db: tx, forUpdate: true})
	})
}

// Create adds a new ticket to the database
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

// GetByID retrieves a ticket by its ID within a workspace
func (r *TicketRepository) GetByID(ctx context.Context, workspaceID, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	result := r.query(ctx).Where("id = ? AND workspace_id = ?", id, workspaceID).First(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, result.Error
	}
	return &ticket, nil
}

// GetDetail retrieves a ticket together with its labels
func (r *TicketRepository) GetDetail(ctx context.Context, workspaceID, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, result.Error
	}
	return &ticket, nil
}

// GetColumnTickets retrieves one status column ordered by position, leaving out excludeID.
// Pass 0 to exclude nothing.
func (r *TicketRepository) GetColumnTickets(ctx context.Context, workspaceID uint, status model.Status, excludeID uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	q := r.query(ctx).Where("workspace_id = ? AND status = ?", workspaceID, status)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	result := q.Order("position").Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tickets, nil
}

// ListByWorkspace retrieves every ticket of a workspace with labels, for the board view
func (r *TicketRepository) ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Where("workspace_id = ?", workspaceID).
		Order("position").
		Order("id").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tickets, nil
}

// ListChildren retrieves the direct sub-tickets of parentID
func (r *TicketRepository) ListChildren(ctx context.Context, workspaceID, parentID uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	result := r.db.WithContext(ctx).
		Where("workspace_id = ? AND parent_id = ?", workspaceID, parentID).
		Order("id").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tickets, nil
}

// DueBetween retrieves open tickets across all workspaces whose due date falls in [from, to)
func (r *TicketRepository) DueBetween(ctx context.Context, from, to time.Time) ([]model.Ticket, error) {
	var tickets []model.Ticket
	result := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ? AND status <> ?", from, to, model.StatusDone).
		Order("workspace_id").
		Order("due_date").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tickets, nil
}

// Update saves every column of an existing ticket; labels are managed separately
func (r *TicketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(ticket)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// UpdatePlacement writes only status, position and completion time
func (r *TicketRepository) UpdatePlacement(ctx context.Context, ticket *model.Ticket) error {
	result := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ? AND workspace_id = ?", ticket.ID, ticket.WorkspaceID).
		Updates(map[string]interface{}{
			"status":       ticket.Status,
			"position":     ticket.Position,
			"completed_at": ticket.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// UpdatePositions writes a batch of positions. Callers wrap it in WithinTx when the batch must be atomic.
func (r *TicketRepository) UpdatePositions(ctx context.Context, workspaceID uint, placements []position.Placement) error {
	for _, p := range placements {
		if err := r.db.WithContext(ctx).Model(&model.Ticket{}).
			Where("id = ? AND workspace_id = ?", p.ID, workspaceID).
			Update("position", p.Position).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a ticket and detaches its children
func (r *TicketRepository) Delete(ctx context.Context, workspaceID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Ticket{}).
			Where("workspace_id = ? AND parent_id = ?", workspaceID, id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND workspace_id = ?", id, workspaceID).Delete(&model.Ticket{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTicketNotFound
		}
		return nil
	})
}

// AddLabel adds a label to a ticket
func (r *TicketRepository) AddLabel(ctx context.Context, ticketID, labelID uint) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO ticket_labels (ticket_id, label_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		ticketID, labelID,
	).Error
}

// RemoveLabel removes a label from a ticket
func (r *TicketRepository) RemoveLabel(ctx context.Context, ticketID, labelID uint) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM ticket_labels WHERE ticket_id = ? AND label_id = ?",
		ticketID, labelID,
	).Error
}
