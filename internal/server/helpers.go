package server

import (
	"github.com/gofiber/fiber/v2"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/policy"
)

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Public story routes use it to compute the liked flag.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	return s.parseBearer(c)
}

// caller builds the authorization caller from locals set by AuthRequired.
func (s *Server) caller(c *fiber.Ctx) policy.Caller {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("userRole").(models.Role)
	return policy.Caller{ID: userID, Role: role}
}

// resourceID parses a positive numeric :param path segment.
func resourceID(c *fiber.Ctx, param, kind string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + kind + " ID")
	}
	return uint(id), nil
}

// pagination reads limit/offset query params with sane bounds.
func pagination(c *fiber.Ctx, defaultLimit int) (limit, offset int) {
	limit = c.QueryInt("limit", defaultLimit)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
