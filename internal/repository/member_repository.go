package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

type MemberRepositoryInterface interface {
	Join(ctx context.Context, workspaceID, userID uint, role model.Role) (*model.Member, error)
	GetByID(ctx context.Context, workspaceID, memberID uint) (*model.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Member, error)
	UpdateRole(ctx context.Context, workspaceID, memberID uint, role model.Role) error
	Remove(ctx context.Context, workspaceID, memberID uint) error
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Join adds the user to the workspace with role. An existing membership is returned unchanged.
func (r *MemberRepository) Join(ctx context.Context, workspaceID, userID uint, role model.Role) (*model.Member, error) {
	member := &model.Member{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}

	// Transaction guards against two joins racing on the unique index
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Member
		err := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&existing).Error
		if err == nil {
			*member = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Omit("Workspace", "User").Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Find returns the user's membership, or nil, nil when the user does not belong to the workspace.
func (r *MemberRepository) Find(ctx context.Context, workspaceID, userID uint) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, workspaceID, memberID uint) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", memberID, workspaceID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByWorkspace returns the members with their user records.
func (r *MemberRepository) ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("id").
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) UpdateRole(ctx context.Context, workspaceID, memberID uint, role model.Role) error {
	result := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ? AND workspace_id = ?", memberID, workspaceID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Remove(ctx context.Context, workspaceID, memberID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", memberID, workspaceID).
		Delete(&model.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// CheckAccess reports whether the user's role in the workspace grants at least required.
func (r *MemberRepository) CheckAccess(ctx context.Context, workspaceID, userID uint, required model.Role) (bool, error) {
	member, err := r.Find(ctx, workspaceID, userID)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, nil
	}
	return member.Role.Allows(required), nil
}
