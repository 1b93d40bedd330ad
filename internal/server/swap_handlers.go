package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req struct {
		OfferedSkillID uint   `json:"offered_skill_id"`
		WantedSkillID  uint   `json:"wanted_skill_id"`
		Message        string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.OfferedSkillID == 0 || req.WantedSkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("offered_skill_id and wanted_skill_id are required"))
	}

	swap, err := s.swapService.Create(c.UserContext(), currentUserID(c),
		req.OfferedSkillID, req.WantedSkillID, req.Message)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	status := models.SwapStatus(c.Query("status"))

	swaps, total, err := s.swapService.List(c.UserContext(), currentUserID(c), status, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":  swaps,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Get(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(swap)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Accept(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(swap)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Reject(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(swap)
}

// CancelSwap handles POST /api/swaps/:id/cancel
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Cancel(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, svcErr := s.swapService.Complete(c.UserContext(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(swap)
}

// RateSwap handles POST /api/swaps/:id/rate
func (s *Server) RateSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, svcErr := s.swapService.Rate(c.UserContext(), currentUserID(c), id, req.Rating, req.Feedback)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}
