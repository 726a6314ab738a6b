package service

import (
	"context"
	"strings"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/policy"
	"criminaldiaries/internal/repository"
)

// CommentService implements comment creation, listing and deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	storyRepo   repository.StoryRepository
}

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	Caller  policy.Caller
	StoryID uint
	Content string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	storyRepo repository.StoryRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		storyRepo:   storyRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	// The target story must exist before any validation result leaks out.
	if _, err := s.storyRepo.GetByID(ctx, in.StoryID, 0); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Please provide comment content")
	}
	if len(content) > models.MaxCommentLen {
		return nil, models.NewValidationError("Comment cannot be more than 500 characters")
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.Caller.ID,
		StoryID: in.StoryID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, storyID uint) ([]*models.Comment, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByStory(ctx, storyID)
}

func (s *CommentService) DeleteComment(ctx context.Context, caller policy.Caller, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, comment, policy.ActionDelete, "comment"); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
