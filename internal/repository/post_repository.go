package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/model"
)

const postSummaryColumns = `posts.*, users.username AS author,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count`

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post failed: %w", err)
	}
	return count > 0, nil
}

// OwnerID returns the owning user of a post; found is false when the post does not exist.
func (r *PostRepository) OwnerID(ctx context.Context, id uint) (uint, bool, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Select("id", "user_id").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get post owner failed: %w", err)
	}
	return post.UserID, true, nil
}

func (r *PostRepository) GetSummary(ctx context.Context, id uint) (*model.PostSummary, error) {
	var rows []model.PostSummary
	err := r.summaryQuery(ctx).Where("posts.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get post summary failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// List returns posts newest first.
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]model.PostSummary, error) {
	rows := make([]model.PostSummary, 0, limit)
	err := r.summaryQuery(ctx).
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return rows, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count posts failed: %w", err)
	}
	return total, nil
}

// UpdateByIDAndUserID reports whether a row owned by userID was updated.
func (r *PostRepository) UpdateByIDAndUserID(ctx context.Context, id, userID uint, title, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"title": title, "content": content})
	if result.Error != nil {
		return false, fmt.Errorf("update post failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByIDAndUserID removes the post together with its likes and comments.
func (r *PostRepository) DeleteByIDAndUserID(ctx context.Context, id, userID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete post failed: %w", err)
	}
	return deleted, nil
}

func (r *PostRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select(postSummaryColumns).
		Joins("LEFT JOIN users ON users.id = posts.user_id")
}
