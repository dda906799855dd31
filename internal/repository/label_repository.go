package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"gorm.io/gorm"
)

type LabelRepository struct {
	db *gorm.DB
}

type LabelRepositoryInterface interface {
	Create(ctx context.Context, label *model.Label) error
	GetByWorkspaceID(ctx context.Context, workspaceID uint) ([]model.Label, error)
	Update(ctx context.Context, label *model.Label) error
	Delete(ctx context.Context, workspaceID, id uint) error
}

var _ LabelRepositoryInterface = (*LabelRepository)(nil)

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create adds a new label to the database
func (r *LabelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Omit("Tickets").Create(label).Error
}

// GetByID retrieves a label of a workspace by its ID
func (r *LabelRepository) GetByID(ctx context.Context, workspaceID, id uint) (*model.Label, error) {
	var label model.Label
	result := r.db.WithContext(ctx).First(&label, "id = ? AND workspace_id = ?", id, workspaceID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, result.Error
	}
	return &label, nil
}

// GetByWorkspaceID retrieves all labels of a workspace
func (r *LabelRepository) GetByWorkspaceID(ctx context.Context, workspaceID uint) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("name").Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// Update updates an existing label
func (r *LabelRepository) Update(ctx context.Context, label *model.Label) error {
	result := r.db.WithContext(ctx).Model(&model.Label{}).
		Where("id = ? AND workspace_id = ?", label.ID, label.WorkspaceID).
		Updates(map[string]interface{}{"name": label.Name, "color": label.Color})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}

// Delete removes a label by its ID
func (r *LabelRepository) Delete(ctx context.Context, workspaceID, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Label{}, "id = ? AND workspace_id = ?", id, workspaceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}
