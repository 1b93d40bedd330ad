package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BrowseUsers handles GET /api/users
func (s *Server) BrowseUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	search := c.Query("search")

	users, total, err := s.userService.Browse(c.UserContext(), search, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetMyStats handles GET /api/users/me/stats
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.userService.GetPublicProfile(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(user)
}

// GetUserRatings handles GET /api/users/:id/ratings
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	ratings, total, svcErr := s.userService.Ratings(c.UserContext(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"ratings": ratings,
		"total":   total,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetUserRatingSummary handles GET /api/users/:id/rating-summary
func (s *Server) GetUserRatingSummary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, svcErr := s.userService.RatingSummary(c.UserContext(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(summary)
}
