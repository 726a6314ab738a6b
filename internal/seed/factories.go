// Package seed provides database seeding utilities for development and
// testing. These helpers are intended for non-production use only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"criminaldiaries/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:          gofakeit.Email(),
		Role:           models.RoleUser,
		ProfilePicture: models.DefaultProfilePicture,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	// regenerate identity on a unique collision, the fake pool is finite
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		if err = f.db.Create(user).Error; err == nil {
			return user, nil
		}
		if !isUniqueError(err) {
			return nil, err
		}
		user.Username = gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(1000, 9999))
		user.Email = fmt.Sprintf("%s@%s", user.Username, gofakeit.DomainName())
	}
	return nil, err
}

// BuildStory constructs a story struct without persisting it. Useful for
// batching inserts.
func (f *Factory) BuildStory(author *models.User, overrides ...func(*models.Story)) *models.Story {
	category := models.Categories[f.rand.Intn(len(models.Categories))]

	title := storyTitles[f.rand.Intn(len(storyTitles))]
	story := &models.Story{
		Title:    title,
		Excerpt:  clamp(gofakeit.Sentence(14), models.MaxExcerptLen),
		Content:  gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Image:    fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
		Category: category,
		ReadTime: fmt.Sprintf("%d min read", gofakeit.Number(3, 15)),
		AuthorID: author.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	story.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(story)
	}
	return story
}

// CreateStoriesBatch persists multiple stories in a single DB call.
func (f *Factory) CreateStoriesBatch(stories []*models.Story) error {
	if len(stories) == 0 {
		return nil
	}
	return f.db.Create(&stories).Error
}

// CreateComment persists a comment by the given user on the given story.
func (f *Factory) CreateComment(user *models.User, story *models.Story) (*models.Comment, error) {
	comment := &models.Comment{
		Content: clamp(commentBodies[f.rand.Intn(len(commentBodies))], models.MaxCommentLen),
		StoryID: story.ID,
		UserID:  user.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like, ignoring duplicates from repeated picks.
func (f *Factory) CreateLike(user *models.User, story *models.Story) error {
	like := &models.Like{UserID: user.ID, StoryID: story.ID}
	if err := f.db.Create(like).Error; err != nil {
		// duplicate pick of the same (user, story) pair is fine,
		// anything else has to surface
		if !isUniqueError(err) {
			return err
		}
		log.Printf("skipping duplicate like user=%d story=%d", user.ID, story.ID)
	}
	return nil
}

func isUniqueError(err error) bool {
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "unique constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func clamp(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

var storyTitles = []string{
	"The Vanishing of Flight Attendant Clara Hughes",
	"Inside the Mind of the Riverside Strangler",
	"The Great Mid-Century Bank Vault Heist",
	"Cold Trail: The Harper Family Disappearance",
	"Decoding the Cipher Letters of 1974",
	"The Forensic Breakthrough That Closed a 30-Year Case",
	"Anatomy of a Con: The Art Dealer Who Never Existed",
	"The Night Watchman Who Saw Too Much",
	"Unsolved: The Lighthouse Keeper's Final Entry",
	"Profiling the Interstate Phantom",
	"The Jewel Courier Job That Went Sideways",
	"What the Pollen Evidence Revealed",
	"The Confession That Didn't Add Up",
	"Three Witnesses, Three Different Stories",
	"The Archive Room Burglary Nobody Reported",
	"How DNA Genealogy Cracked the Orchard Case",
	"The Collector: A Study in Obsession",
	"Missing Persons and the Highway Corridor Theory",
	"The Counterfeit Ring Hidden in Plain Sight",
	"Last Call at the Meridian Hotel",
}

var commentBodies = []string{
	"This case has haunted me for years. Great writeup.",
	"I remember when this was all over the news. Chilling.",
	"The timeline here doesn't match what the detectives said in the documentary.",
	"Incredible research. Where did you find the court records?",
	"The forensic detail in this one is fascinating.",
	"I grew up near where this happened. The whole town still talks about it.",
	"Has anyone looked into the second witness? Their account never sat right with me.",
	"Well written, but I think the accomplice theory holds more water.",
	"This deserves way more attention. Sharing with my podcast group.",
	"The cipher section gave me chills. Excellent breakdown.",
	"I'd love a follow-up on the appeal that's still pending.",
	"Small correction: the arrest was in March, not May.",
	"Reads like a thriller. Hard to believe it's all real.",
	"The psychology angle here is what sets this apart.",
	"Thank you for handling the victims' stories with respect.",
}
