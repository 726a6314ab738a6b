package server

import (
	"github.com/gofiber/fiber/v2"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/service"
)

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Content string `json:"content"`
		StoryID uint   `json:"storyId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.StoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Story ID is required"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		Caller:  s.caller(c),
		StoryID: req.StoryID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.OK(comment))
}

// GetStoryComments handles GET /api/comments/story/:storyId
func (s *Server) GetStoryComments(c *fiber.Ctx) error {
	ctx := c.Context()
	storyID, err := resourceID(c, "storyId", "story")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comments, err := s.commentService.ListComments(ctx, storyID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithCount(comments, len(comments)))
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "comment")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.commentService.DeleteComment(ctx, s.caller(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithMessage(nil, "Comment deleted successfully"))
}
