package models

import "time"

// Like records that UserID liked the MongoDB post PostID. The rows for one
// user form that user's likedPosts.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"size:24;index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}
