package model

import "time"

// Like exists while a user likes a post. The composite unique index is what keeps
// concurrent toggles from producing two rows for the same pair, so rows are hard-deleted.
// The post foreign key rejects likes on a post deleted after the existence check.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post,priority:1" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post,priority:2;index" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeEvent is published after a toggle settles.
type LikeEvent struct {
	UserID    uint      `json:"user_id"`
	PostID    uint      `json:"post_id"`
	Liked     bool      `json:"liked"`
	LikeCount int64     `json:"like_count"`
	At        time.Time `json:"at"`
}
