// Package models contains data structures for the application's domain models.
package models

import "time"

// MaxCommentLen caps comment content length.
const MaxCommentLen = 500

// Comment represents a reader comment on a story.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	StoryID   uint      `gorm:"not null;index" json:"story_id"`
	Story     *Story    `gorm:"foreignKey:StoryID" json:"story,omitempty"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerID implements policy.Ownable.
func (c *Comment) OwnerID() uint {
	return c.UserID
}
