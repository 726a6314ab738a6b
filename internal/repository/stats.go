// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/observability"

	"gorm.io/gorm"
)

// CategoryCount is a story tally for one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ActiveCommenter pairs a user with their comment count.
type ActiveCommenter struct {
	User         models.User `json:"user"`
	CommentCount int64       `json:"comment_count"`
}

// SiteStats is the admin dashboard aggregate.
type SiteStats struct {
	UserCount      int64             `json:"user_count"`
	StoryCount     int64             `json:"story_count"`
	CommentCount   int64             `json:"comment_count"`
	Categories     []CategoryCount   `json:"categories"`
	PopularStories []*models.Story   `json:"popular_stories"`
	ActiveUsers    []ActiveCommenter `json:"active_users"`
}

// StatsRepository computes read-only reporting aggregates.
type StatsRepository interface {
	SiteStats(ctx context.Context) (*SiteStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

const topN = 5

func (r *statsRepository) SiteStats(ctx context.Context) (*SiteStats, error) {
	defer observability.TrackQuery("aggregate", "stats")()

	stats := &SiteStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.UserCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Story{}).Count(&stats.StoryCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Comment{}).Count(&stats.CommentCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := db.Model(&models.Story{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&stats.Categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Most liked stories, ordered by an explicit like count. The count is a
	// subquery alias rather than a sort on the likes relation itself, so the
	// ordering is well defined.
	if err := db.Model(&models.Story{}).
		Select("stories.*, (SELECT COUNT(*) FROM likes WHERE likes.story_id = stories.id) as likes_count").
		Preload("Author").
		Order("likes_count DESC").
		Limit(topN).
		Find(&stats.PopularStories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	type commenterRow struct {
		UserID       uint
		CommentCount int64
	}
	var rows []commenterRow
	if err := db.Model(&models.Comment{}).
		Select("user_id, COUNT(*) as comment_count").
		Group("user_id").
		Order("comment_count DESC").
		Limit(topN).
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(rows) > 0 {
		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.UserID)
		}
		var users []models.User
		if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		byID := make(map[uint]models.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for _, row := range rows {
			stats.ActiveUsers = append(stats.ActiveUsers, ActiveCommenter{
				User:         byID[row.UserID],
				CommentCount: row.CommentCount,
			})
		}
	}

	return stats, nil
}
