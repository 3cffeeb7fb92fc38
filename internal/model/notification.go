package model

import "time"

const NotificationPostLiked = "post_liked"

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ActorID   uint      `gorm:"not null" json:"actor_id"`
	PostID    uint      `gorm:"not null" json:"post_id"`
	Kind      string    `gorm:"size:32;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
