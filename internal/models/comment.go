package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index:idx_comments_post_created,priority:1"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comments_post_created,priority:2,sort:desc"`
}

// CreateCommentRequest defines the input for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
