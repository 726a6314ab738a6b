// Package service carries validation and authorization for the API's operations.
package service

import (
	"context"
	"strings"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/observability"
	"criminaldiaries/internal/policy"
	"criminaldiaries/internal/repository"
)

// StoryService implements story CRUD and the like toggle.
type StoryService struct {
	storyRepo repository.StoryRepository
}

// NewStoryService creates a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo}
}

// CreateStoryInput carries the fields for a new story.
type CreateStoryInput struct {
	Caller   policy.Caller
	Title    string
	Excerpt  string
	Content  string
	Image    string
	Category string
	ReadTime string
}

// UpdateStoryInput carries a partial story update. Empty fields are left unchanged.
type UpdateStoryInput struct {
	Caller   policy.Caller
	StoryID  uint
	Title    string
	Excerpt  string
	Content  string
	Image    string
	Category string
	ReadTime string
}

func validateStoryFields(title, excerpt, category string) error {
	if len(title) > models.MaxTitleLen {
		return models.NewValidationError("Title cannot be more than 100 characters")
	}
	if len(excerpt) > models.MaxExcerptLen {
		return models.NewValidationError("Excerpt cannot be more than 200 characters")
	}
	if category != "" && !models.ValidCategory(category) {
		return models.NewValidationError("Please provide a valid category")
	}
	return nil
}

func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	title := strings.TrimSpace(in.Title)
	excerpt := strings.TrimSpace(in.Excerpt)
	content := strings.TrimSpace(in.Content)
	if title == "" || excerpt == "" || content == "" {
		return nil, models.NewValidationError("Title, excerpt and content are required")
	}
	if in.Category == "" {
		return nil, models.NewValidationError("Please provide a category")
	}
	if err := validateStoryFields(title, excerpt, in.Category); err != nil {
		return nil, err
	}

	story := &models.Story{
		Title:    title,
		Excerpt:  excerpt,
		Content:  content,
		Image:    in.Image,
		Category: in.Category,
		AuthorID: in.Caller.ID,
		ReadTime: in.ReadTime,
	}
	if story.Image == "" {
		story.Image = models.DefaultStoryImage
	}
	if story.ReadTime == "" {
		story.ReadTime = models.DefaultReadTime
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	observability.StoryEvents.WithLabelValues("created").Inc()

	return s.storyRepo.GetByID(ctx, story.ID, in.Caller.ID)
}

func (s *StoryService) GetStory(ctx context.Context, id uint, currentUserID uint) (*models.Story, error) {
	return s.storyRepo.GetDetail(ctx, id, currentUserID)
}

func (s *StoryService) ListStories(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Story, error) {
	return s.storyRepo.List(ctx, limit, offset, currentUserID)
}

func (s *StoryService) UpdateStory(ctx context.Context, in UpdateStoryInput) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, in.StoryID, in.Caller.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(in.Caller, story, policy.ActionUpdate, "story"); err != nil {
		return nil, err
	}

	// A provided field may not be blank once trimmed; absent fields stay unchanged.
	title := strings.TrimSpace(in.Title)
	if in.Title != "" && title == "" {
		return nil, models.NewValidationError("Title cannot be blank")
	}
	excerpt := strings.TrimSpace(in.Excerpt)
	if in.Excerpt != "" && excerpt == "" {
		return nil, models.NewValidationError("Excerpt cannot be blank")
	}
	content := strings.TrimSpace(in.Content)
	if in.Content != "" && content == "" {
		return nil, models.NewValidationError("Content cannot be blank")
	}
	if err := validateStoryFields(title, excerpt, in.Category); err != nil {
		return nil, err
	}

	// Author is immutable; only content fields may change.
	if title != "" {
		story.Title = title
	}
	if excerpt != "" {
		story.Excerpt = excerpt
	}
	if content != "" {
		story.Content = content
	}
	if in.Image != "" {
		story.Image = in.Image
	}
	if in.Category != "" {
		story.Category = in.Category
	}
	if in.ReadTime != "" {
		story.ReadTime = in.ReadTime
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}
	observability.StoryEvents.WithLabelValues("updated").Inc()

	return s.storyRepo.GetByID(ctx, story.ID, in.Caller.ID)
}

func (s *StoryService) DeleteStory(ctx context.Context, caller policy.Caller, id uint) error {
	story, err := s.storyRepo.GetByID(ctx, id, caller.ID)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, story, policy.ActionDelete, "story"); err != nil {
		return err
	}
	if err := s.storyRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.StoryEvents.WithLabelValues("deleted").Inc()
	return nil
}

// ToggleLike flips the caller's membership in the story's likes set and
// returns the refreshed story plus a human-readable outcome.
func (s *StoryService) ToggleLike(ctx context.Context, userID, storyID uint) (*models.Story, string, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID, 0); err != nil {
		return nil, "", err
	}

	liked, err := s.storyRepo.IsLiked(ctx, userID, storyID)
	if err != nil {
		return nil, "", err
	}

	message := "Story liked"
	if liked {
		message = "Story unliked"
		if err := s.storyRepo.Unlike(ctx, userID, storyID); err != nil {
			return nil, "", err
		}
	} else if err := s.storyRepo.Like(ctx, userID, storyID); err != nil {
		return nil, "", err
	}
	observability.StoryEvents.WithLabelValues("like_toggled").Inc()

	story, err := s.storyRepo.GetByID(ctx, storyID, userID)
	if err != nil {
		return nil, "", err
	}
	return story, message, nil
}
