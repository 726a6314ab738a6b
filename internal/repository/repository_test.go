package repository

import (
	"testing"

	"criminaldiaries/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Story{},
		&models.Comment{},
		&models.Like{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestStory(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Story {
	t.Helper()
	story := &models.Story{
		Title:    title,
		Excerpt:  "An excerpt",
		Content:  "Some content",
		Category: models.CategoryColdCases,
		AuthorID: author.ID,
	}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("Failed to create test story: %v", err)
	}
	return story
}
