package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	db *gorm.DB
}

type NotificationRepositoryInterface interface {
	Get(ctx context.Context, workspaceID uint) (*model.NotificationSettings, error)
	Upsert(ctx context.Context, settings *model.NotificationSettings) error
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Get returns the workspace's settings, or disabled defaults when none were saved.
func (r *NotificationRepository) Get(ctx context.Context, workspaceID uint) (*model.NotificationSettings, error) {
	var settings model.NotificationSettings
	err := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.NotificationSettings{WorkspaceID: workspaceID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert inserts or replaces the workspace's settings
func (r *NotificationRepository) Upsert(ctx context.Context, settings *model.NotificationSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}},
		UpdateAll: true,
	}).Create(settings).Error
}

// ListEnabled returns the settings of every workspace with delivery switched on
func (r *NotificationRepository) ListEnabled(ctx context.Context) ([]model.NotificationSettings, error) {
	var settings []model.NotificationSettings
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("workspace_id").Find(&settings).Error
	return settings, err
}
