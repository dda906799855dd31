package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"gorm.io/gorm"
)

type ChecklistRepository struct {
	db *gorm.DB
}

type ChecklistRepositoryInterface interface {
	Create(ctx context.Context, item *model.ChecklistItem) error
	GetByID(ctx context.Context, workspaceID, id uint) (*model.ChecklistItem, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]model.ChecklistItem, error)
	GetMaxPosition(ctx context.Context, ticketID uint) (*int64, error)
	Update(ctx context.Context, item *model.ChecklistItem) error
	Delete(ctx context.Context, id uint) error
}

var _ ChecklistRepositoryInterface = (*ChecklistRepository)(nil)

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Create(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID finds a checklist item whose ticket belongs to the workspace
func (r *ChecklistRepository) GetByID(ctx context.Context, workspaceID, id uint) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	err := r.db.WithContext(ctx).
		Joins("JOIN tickets ON tickets.id = checklist_items.ticket_id").
		Where("checklist_items.id = ? AND tickets.workspace_id = ?", id, workspaceID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChecklistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ChecklistRepository) ListByTicket(ctx context.Context, ticketID uint) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).Order("position").Order("id").Find(&items).Error
	return items, err
}

// GetMaxPosition returns the last position on the ticket's checklist, or nil when it is empty.
func (r *ChecklistRepository) GetMaxPosition(ctx context.Context, ticketID uint) (*int64, error) {
	var maxPosition struct {
		Max *int64
	}
	err := r.db.WithContext(ctx).Model(&model.ChecklistItem{}).
		Select("MAX(position) as max").
		Where("ticket_id = ?", ticketID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

func (r *ChecklistRepository) Update(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ChecklistRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ChecklistItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChecklistNotFound
	}
	return nil
}
