package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/model"
)

var (
	// ErrLikeExists is returned when the (user_id, post_id) unique index rejects an insert.
	ErrLikeExists = errors.New("like already exists")
	// ErrPostMissing is returned when the post foreign key rejects an insert.
	ErrPostMissing = errors.New("liked post does not exist")
)

// LikeRepository issues one statement per call. Callers that race on the same
// pair rely on the unique index instead of a surrounding transaction.
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check like failed: %w", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) Create(ctx context.Context, userID, postID uint) error {
	like := &model.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLikeExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrPostMissing
		}
		return fmt.Errorf("create like failed: %w", err)
	}
	return nil
}

// Delete reports whether a row was removed. Zero rows means another request got there first.
func (r *LikeRepository) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, fmt.Errorf("delete like failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count likes failed: %w", err)
	}
	return count, nil
}
