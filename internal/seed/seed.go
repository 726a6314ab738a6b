package seed

import (
	"fmt"
	"log"

	"criminaldiaries/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumStories  int
	MaxDays     int
	ShouldClean bool
	SkipBcrypt  bool
}

// DefaultOptions returns a sensible development preset.
func DefaultOptions() Options {
	return Options{
		NumUsers:   15,
		NumStories: 40,
		MaxDays:    90,
	}
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Println("Starting database seeding...")

	if opts.NumUsers <= 0 {
		opts.NumUsers = DefaultOptions().NumUsers
	}
	if opts.NumStories <= 0 {
		opts.NumStories = DefaultOptions().NumStories
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	stories := make([]*models.Story, 0, opts.NumStories)
	for i := 0; i < opts.NumStories; i++ {
		author := users[factory.rand.Intn(len(users))]
		stories = append(stories, factory.BuildStory(author))
	}
	if err := factory.CreateStoriesBatch(stories); err != nil {
		return fmt.Errorf("failed to create stories: %w", err)
	}
	log.Printf("Created %d stories", len(stories))

	commentCount := 0
	for _, story := range stories {
		numComments := factory.rand.Intn(5)
		for i := 0; i < numComments; i++ {
			commenter := users[factory.rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, story); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("Created %d comments", commentCount)

	likeCount := 0
	for _, story := range stories {
		numLikes := factory.rand.Intn(len(users))
		picked := factory.rand.Perm(len(users))[:numLikes]
		for _, idx := range picked {
			if err := factory.CreateLike(users[idx], story); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
			likeCount++
		}
	}
	log.Printf("Added %d likes", likeCount)

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")

	// Delete in dependency order to respect foreign key constraints.
	// The bootstrap admin is preserved.
	for _, stmt := range []string{
		"DELETE FROM comments",
		"DELETE FROM likes",
		"DELETE FROM stories",
		"DELETE FROM users WHERE role != 'admin'",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
