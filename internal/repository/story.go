// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"criminaldiaries/internal/cache"
	"criminaldiaries/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Story, error)
	// GetDetail also loads the story's comments with their commenters.
	GetDetail(ctx context.Context, id uint, currentUserID uint) (*models.Story, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	// Delete removes the story along with its comments and likes.
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, storyID uint) (bool, error)
	Like(ctx context.Context, userID, storyID uint) error
	Unlike(ctx context.Context, userID, storyID uint) error
}

// storyRepository implements StoryRepository
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStats(ctx)
	return nil
}

// applyStoryDetails adds subqueries to fetch the like count and liked status in a single query.
func (r *storyRepository) applyStoryDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "stories.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.story_id = stories.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.story_id = stories.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery)
}

func (r *storyRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Story, error) {
	var story models.Story
	err := r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		First(&story, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &story, nil
}

func (r *storyRepository) GetDetail(ctx context.Context, id uint, currentUserID uint) (*models.Story, error) {
	var story models.Story

	// The anonymous rendering carries no caller-specific liked flag, so it is
	// the only one safe to share through the cache.
	if currentUserID == 0 {
		err := cache.Aside(ctx, cache.StoryKey(id), &story, cache.StoryTTL, func() error {
			return r.loadDetail(ctx, id, 0, &story)
		})
		if err != nil {
			return nil, err
		}
		return &story, nil
	}

	if err := r.loadDetail(ctx, id, currentUserID, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) loadDetail(ctx context.Context, id uint, currentUserID uint, story *models.Story) error {
	err := r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		First(story, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Story", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *storyRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Story, error) {
	var stories []*models.Story
	err := r.applyStoryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) Update(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Save(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStory(ctx, story.ID)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Story{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStory(ctx, id)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *storyRepository) IsLiked(ctx context.Context, userID, storyID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *storyRepository) Like(ctx context.Context, userID, storyID uint) error {
	// ON CONFLICT DO NOTHING so concurrent toggles cannot produce duplicates;
	// the unique (user_id, story_id) index keeps the likes set a set.
	like := models.Like{UserID: userID, StoryID: storyID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStory(ctx, storyID)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *storyRepository) Unlike(ctx context.Context, userID, storyID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStory(ctx, storyID)
	cache.InvalidateStats(ctx)
	return nil
}
