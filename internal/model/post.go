package model

import "time"

// Post is owned by exactly one user; UserID never changes after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_posts_user_created,priority:1" json:"user_id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_posts_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostSummary is a post row joined with its author and counters.
type PostSummary struct {
	Post
	Author       string `json:"author"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}

// PostDetail is the cacheable view of a single post. Per-viewer fields are not part of it.
type PostDetail struct {
	PostSummary
	Comments []CommentView `json:"comments"`
}
