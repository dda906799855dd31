package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

type WorkspaceRepositoryInterface interface {
	CreateWithOwner(ctx context.Context, workspace *model.Workspace) (*model.Member, error)
	CountOwned(ctx context.Context, ownerID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (*model.Workspace, error)
	GetByInviteCode(ctx context.Context, code uuid.UUID) (*model.Workspace, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Workspace, error)
}

var _ WorkspaceRepositoryInterface = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// CreateWithOwner stores the workspace and its owner membership in one transaction.
func (r *WorkspaceRepository) CreateWithOwner(ctx context.Context, workspace *model.Workspace) (*model.Member, error) {
	if workspace.InviteCode == uuid.Nil {
		workspace.InviteCode = uuid.New()
	}
	owner := &model.Member{UserID: workspace.OwnerID, Role: model.RoleOwner}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner").Create(workspace).Error; err != nil {
			return err
		}
		owner.WorkspaceID = workspace.ID
		return tx.Omit("Workspace", "User").Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

func (r *WorkspaceRepository) CountOwned(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Workspace{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uint) (*model.Workspace, error) {
	var workspace model.Workspace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) GetByInviteCode(ctx context.Context, code uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}

// ListForUser returns every workspace the user is a member of.
func (r *WorkspaceRepository) ListForUser(ctx context.Context, userID uint) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Order("workspaces.id").
		Find(&workspaces).Error
	return workspaces, err
}

// ListIDs returns the ids of all workspaces, for maintenance jobs.
func (r *WorkspaceRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Workspace{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *WorkspaceRepository) Update(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(workspace).Error
}
