// Package models contains data structures for the application's domain models.
package models

import "time"

// Story categories. Exactly these eight values are accepted.
const (
	CategorySerialKillers      = "Serial Killers"
	CategoryColdCases          = "Cold Cases"
	CategoryHeists             = "Heists"
	CategoryUnsolvedMysteries  = "Unsolved Mysteries"
	CategoryCriminalPsychology = "Criminal Psychology"
	CategoryTrueCrime          = "True Crime"
	CategoryForensicScience    = "Forensic Science"
	CategoryConspiracies       = "Conspiracies"
)

// Categories lists every accepted story category.
var Categories = []string{
	CategorySerialKillers,
	CategoryColdCases,
	CategoryHeists,
	CategoryUnsolvedMysteries,
	CategoryCriminalPsychology,
	CategoryTrueCrime,
	CategoryForensicScience,
	CategoryConspiracies,
}

// ValidCategory reports whether c is one of the eight accepted categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Field length limits carried over from input validation.
const (
	MaxTitleLen   = 100
	MaxExcerptLen = 200
)

// DefaultStoryImage is used when a story has no image reference.
const DefaultStoryImage = "/placeholder.svg?height=400&width=600"

// DefaultReadTime labels stories whose author gave no estimate.
const DefaultReadTime = "5 min read"

// Story represents a published true-crime story.
type Story struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Excerpt  string `gorm:"size:200;not null" json:"excerpt"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Image    string `gorm:"default:'/placeholder.svg?height=400&width=600'" json:"image"`
	Category string `gorm:"type:varchar(30);not null;index" json:"category"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	ReadTime string `gorm:"default:'5 min read'" json:"read_time"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this story (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Comments  []Comment `gorm:"foreignKey:StoryID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID implements policy.Ownable.
func (s *Story) OwnerID() uint {
	return s.AuthorID
}
