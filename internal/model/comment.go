package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index:idx_comments_post_created,priority:1" json:"post_id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentView struct {
	Comment
	Author string `json:"author"`
}
