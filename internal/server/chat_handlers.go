package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// OpenConversation handles POST /api/conversations
func (s *Server) OpenConversation(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	conv, err := s.chatService.OpenConversation(c.UserContext(), currentUserID(c), req.UserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.chatService.ListConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	messages, svcErr := s.chatService.Messages(c.UserContext(), currentUserID(c), id, p.Limit, p.Offset)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Message string `json:"message"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, svcErr := s.chatService.Send(c.UserContext(), currentUserID(c), id, req.Message)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetUnreadMessageCount handles GET /api/conversations/unread-count
func (s *Server) GetUnreadMessageCount(c *fiber.Ctx) error {
	count, err := s.chatService.TotalUnread(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
