package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	unreadOnly := c.QueryBool("unread_only", false)

	notifications, total, err := s.notificationService.List(c.UserContext(), currentUserID(c), unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"total":         total,
		"limit":         p.Limit,
		"offset":        p.Offset,
	})
}

// GetUnreadNotificationCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadNotificationCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.notificationService.Delete(c.UserContext(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
