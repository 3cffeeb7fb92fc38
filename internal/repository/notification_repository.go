package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification failed: %w", err)
	}
	return nil
}

// ListByUserID returns the newest notifications addressed to userID.
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	items := make([]model.Notification, 0, limit)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications failed: %w", err)
	}
	return items, nil
}
