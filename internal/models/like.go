package models

import "time"

// Like represents a like on a post. The (post_id, user_id) unique index is
// load-bearing: it is the arbiter for concurrent like/unlike toggles, and a
// Like row's existence is the source of truth for "has this user liked this
// post". likes_count on Post is derived from these rows.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_likes_post_user,priority:1"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_post_user,priority:2;index"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}
