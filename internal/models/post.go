package models

import "time"

// Post represents a social media post with denormalized interaction counters.
// The counters are cached aggregates; the Like/Comment/Share rows are the
// source of truth and every counter write shares a transaction with the row
// write it reflects.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      uint      `json:"author_id" gorm:"not null;index:idx_posts_author_created,priority:1"`
	Author        User      `json:"author" gorm:"foreignKey:AuthorID"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ImageURL      *string   `json:"image_url,omitempty"`
	LikesCount    int       `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int       `json:"comments_count" gorm:"not null;default:0"`
	SharesCount   int       `json:"shares_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"index:,sort:desc;index:idx_posts_author_created,priority:2,sort:desc"`
	UpdatedAt     time.Time `json:"updated_at"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes    []Like    `json:"likes,omitempty" gorm:"foreignKey:PostID"`
	Shares   []Share   `json:"shares,omitempty" gorm:"foreignKey:PostID"`
}

// CreatePostRequest defines the input for creating a new post
type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,min=1"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the input for updating an existing post
type UpdatePostRequest struct {
	Content  string  `json:"content,omitempty" validate:"omitempty,min=1"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}
