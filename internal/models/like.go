package models

import "time"

// Like records that a user has liked a story.
// The combination of UserID and StoryID must be unique, which gives the
// likes set its at-most-once membership.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_story" json:"user_id"`
	StoryID   uint      `gorm:"not null;uniqueIndex:idx_user_story" json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}
