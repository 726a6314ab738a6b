// Package models contains data structures for the application's domain models.
package models

import "time"

// Role defines the authorization level of a user account.
type Role string

const (
	// RoleUser is the default role for signed-up accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin console and every resource.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the accepted role values.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// DefaultProfilePicture is used when a user has not uploaded a picture.
const DefaultProfilePicture = "/placeholder.svg?height=100&width=100"

// User represents a reader or author account.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Role           Role      `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	ProfilePicture string    `gorm:"default:'/placeholder.svg?height=100&width=100'" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Stories        []Story   `gorm:"foreignKey:AuthorID" json:"stories,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OwnerID implements policy.Ownable: a user record is owned by itself.
func (u *User) OwnerID() uint {
	return u.ID
}
