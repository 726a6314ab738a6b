package server

import (
	"github.com/gofiber/fiber/v2"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/service"
)

// GetStories handles GET /api/stories
func (s *Server) GetStories(c *fiber.Ctx) error {
	ctx := c.Context()
	limit, offset := pagination(c, 20)
	userID, _ := s.optionalUserID(c)

	stories, err := s.storyService.ListStories(ctx, limit, offset, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithCount(stories, len(stories)))
}

// GetStory handles GET /api/stories/:id
func (s *Server) GetStory(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "story")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	userID, _ := s.optionalUserID(c)

	story, err := s.storyService.GetStory(ctx, id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OK(story))
}

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Title    string `json:"title"`
		Excerpt  string `json:"excerpt"`
		Content  string `json:"content"`
		Image    string `json:"image"`
		Category string `json:"category"`
		ReadTime string `json:"readTime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.CreateStory(ctx, service.CreateStoryInput{
		Caller:   s.caller(c),
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.OK(story))
}

// UpdateStory handles PUT /api/stories/:id
func (s *Server) UpdateStory(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "story")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Excerpt  string `json:"excerpt"`
		Content  string `json:"content"`
		Image    string `json:"image"`
		Category string `json:"category"`
		ReadTime string `json:"readTime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.UpdateStory(ctx, service.UpdateStoryInput{
		Caller:   s.caller(c),
		StoryID:  id,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OK(story))
}

// DeleteStory handles DELETE /api/stories/:id
func (s *Server) DeleteStory(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "story")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.storyService.DeleteStory(ctx, s.caller(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithMessage(nil, "Story deleted successfully"))
}

// LikeStory handles PUT /api/stories/:id/like and toggles the caller's like.
func (s *Server) LikeStory(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "story")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	userID := c.Locals("userID").(uint)

	story, message, err := s.storyService.ToggleLike(ctx, userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithMessage(story, message))
}
