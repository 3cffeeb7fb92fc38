package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment failed: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) OwnerID(ctx context.Context, id uint) (uint, bool, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, false, err
	}
	if comment == nil {
		return 0, false, nil
	}
	return comment.UserID, true, nil
}

// ListByPostID returns the comments of a post oldest first.
func (r *CommentRepository) ListByPostID(ctx context.Context, postID uint) ([]model.CommentView, error) {
	rows := make([]model.CommentView, 0)
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, users.username AS author").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return rows, nil
}

func (r *CommentRepository) UpdateByIDAndUserID(ctx context.Context, id, userID uint, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if result.Error != nil {
		return false, fmt.Errorf("update comment failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CommentRepository) DeleteByIDAndUserID(ctx context.Context, id, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Comment{})
	if result.Error != nil {
		return false, fmt.Errorf("delete comment failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
