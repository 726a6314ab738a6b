package server

import (
	"github.com/gofiber/fiber/v2"

	"criminaldiaries/internal/models"
)

// AdminGetUsers handles GET /api/admin/users
func (s *Server) AdminGetUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	limit, offset := pagination(c, 50)

	users, err := s.userService.ListUsers(ctx, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithCount(users, len(users)))
}

// AdminUpdateUserRole handles PUT /api/admin/users/:id
func (s *Server) AdminUpdateUserRole(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "user")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateRole(ctx, id, models.Role(req.Role))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithMessage(user, "User role updated successfully"))
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := resourceID(c, "id", "user")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.userService.DeleteUser(ctx, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithMessage(nil, "User deleted successfully"))
}

// AdminGetStories handles GET /api/admin/stories
func (s *Server) AdminGetStories(c *fiber.Ctx) error {
	ctx := c.Context()
	limit, offset := pagination(c, 50)
	userID := c.Locals("userID").(uint)

	stories, err := s.storyService.ListStories(ctx, limit, offset, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithCount(stories, len(stories)))
}

// AdminDeleteStory handles DELETE /api/admin/stories/:id
func (s *Server) AdminDeleteStory(c *fiber.Ctx) error {
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

// AdminGetComments handles GET /api/admin/comments
func (s *Server) AdminGetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	limit, offset := pagination(c, 50)

	comments, err := s.commentRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OKWithCount(comments, len(comments)))
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
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

// AdminGetStats handles GET /api/admin/stats
func (s *Server) AdminGetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.SiteStats(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(models.OK(stats))
}
