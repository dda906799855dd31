package repository

import (
	"context"
	"errors"

	"ticketboard/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]model.Comment, error)
	GetByID(ctx context.Context, workspaceID, id uint) (*model.Comment, error)
	Delete(ctx context.Context, id uint) error
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit("Author").Create(comment).Error
}

// ListByTicket returns the ticket's comments oldest first, with their authors
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("ticket_id = ?", ticketID).
		Order("created_at").
		Order("id").
		Find(&comments).Error
	return comments, err
}

// GetByID finds a comment whose ticket belongs to the workspace
func (r *CommentRepository) GetByID(ctx context.Context, workspaceID, id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Joins("JOIN tickets ON tickets.id = comments.ticket_id").
		Where("comments.id = ? AND tickets.workspace_id = ?", id, workspaceID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
