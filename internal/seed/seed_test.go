package seed

import (
	"testing"

	"criminaldiaries/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Story{}, &models.Comment{}, &models.Like{})
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{
		NumUsers:   5,
		NumStories: 10,
		SkipBcrypt: true, // keep the test fast
	})
	assert.NoError(t, err)

	var users, stories int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Story{}).Count(&stories)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(10), stories)

	// every story carries a valid category and an author
	var sample []models.Story
	assert.NoError(t, db.Find(&sample).Error)
	for _, s := range sample {
		assert.True(t, models.ValidCategory(s.Category), "category %q", s.Category)
		assert.NotZero(t, s.AuthorID)
		assert.NotEmpty(t, s.ReadTime)
		assert.LessOrEqual(t, len(s.Excerpt), models.MaxExcerptLen)
	}

	// likes never contain duplicate (user, story) pairs
	var likes, distinct int64
	db.Model(&models.Like{}).Count(&likes)
	db.Model(&models.Like{}).Distinct("user_id", "story_id").Count(&distinct)
	assert.Equal(t, likes, distinct)
}

func TestSeed_CleanPreservesAdmins(t *testing.T) {
	db := setupTestDB(t)

	admin := &models.User{
		Username: "admin",
		Email:    "admin@criminaldiaries.com",
		Password: "hashed",
		Role:     models.RoleAdmin,
	}
	assert.NoError(t, db.Create(admin).Error)

	err := Seed(db, Options{NumUsers: 3, NumStories: 4, ShouldClean: true, SkipBcrypt: true})
	assert.NoError(t, err)

	var kept models.User
	assert.NoError(t, db.Where("email = ?", "admin@criminaldiaries.com").First(&kept).Error)
	assert.Equal(t, models.RoleAdmin, kept.Role)
}

func TestFactory_CreateLikeErrors(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser()
	assert.NoError(t, err)
	story := factory.BuildStory(user)
	assert.NoError(t, db.Create(story).Error)

	// the duplicate pair is tolerated, exactly one row lands
	assert.NoError(t, factory.CreateLike(user, story))
	assert.NoError(t, factory.CreateLike(user, story))
	var likes int64
	db.Model(&models.Like{}).Count(&likes)
	assert.Equal(t, int64(1), likes)

	// a genuinely failing insert surfaces instead of being logged away
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
	assert.Error(t, factory.CreateLike(user, story))
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "fixed-name"
	})
	assert.NoError(t, err)
	assert.Equal(t, "fixed-name", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, user.Email)
}
