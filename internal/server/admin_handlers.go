package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPlatformStats handles GET /api/admin/stats
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetRecentUsers handles GET /api/admin/users/recent
func (s *Server) GetRecentUsers(c *fiber.Ctx) error {
	users, err := s.adminService.RecentUsers(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetRecentSwaps handles GET /api/admin/swaps/recent
func (s *Server) GetRecentSwaps(c *fiber.Ctx) error {
	swaps, err := s.adminService.RecentSwaps(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": swaps})
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, total, err := s.adminService.ListUsers(c.UserContext(), p.Limit, p.Offset)
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

// GetAllSkills handles GET /api/admin/skills
func (s *Server) GetAllSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	skills, total, err := s.adminService.ListSkills(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"skills": skills,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// QuickMessage handles POST /api/admin/quick-message
func (s *Server) QuickMessage(c *fiber.Ctx) error {
	var req struct {
		UserIDs []uint `json:"user_ids"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sent, err := s.adminService.QuickMessage(c.UserContext(), req.UserIDs, req.Title, req.Message)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"notifications_sent": sent})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, false)
}

func (s *Server) setUserBanned(c *fiber.Ctx, banned bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.adminService.SetBanned(c.UserContext(), id, banned)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(user)
}

// SuperviseUser handles POST /api/admin/users/:id/supervise
func (s *Server) SuperviseUser(c *fiber.Ctx) error {
	return s.setUserSupervision(c, true)
}

// UnsuperviseUser handles POST /api/admin/users/:id/unsupervise
func (s *Server) UnsuperviseUser(c *fiber.Ctx) error {
	return s.setUserSupervision(c, false)
}

func (s *Server) setUserSupervision(c *fiber.Ctx, supervised bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.adminService.SetSupervision(c.UserContext(), id, supervised)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(user)
}

// GetPendingSkills handles GET /api/admin/skills/pending
func (s *Server) GetPendingSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	skills, total, err := s.skillService.PendingQueue(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"skills": skills,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// ApproveSkill handles POST /api/admin/skills/:id/approve
func (s *Server) ApproveSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skill, svcErr := s.skillService.Approve(c.UserContext(), id)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(skill)
}

// RejectSkill handles POST /api/admin/skills/:id/reject
func (s *Server) RejectSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// A missing body means the default rejection reason applies.
	_ = c.BodyParser(&req)

	skill, svcErr := s.skillService.Reject(c.UserContext(), id, req.Reason)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(skill)
}

// GetActiveAnnouncements handles GET /api/announcements (public)
func (s *Server) GetActiveAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.adminService.ActiveAnnouncements(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"announcements": announcements})
}

// GetAllAnnouncements handles GET /api/admin/announcements
func (s *Server) GetAllAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	announcements, total, err := s.adminService.AllAnnouncements(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"announcements": announcements,
		"total":         total,
		"limit":         p.Limit,
		"offset":        p.Offset,
	})
}

// CreateAnnouncement handles POST /api/admin/announcements
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	announcement, err := s.adminService.CreateAnnouncement(c.UserContext(), req.Title, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// UpdateAnnouncement handles PUT /api/admin/announcements/:id
func (s *Server) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		IsActive *bool   `json:"is_active"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	announcement, svcErr := s.adminService.UpdateAnnouncement(c.UserContext(), id, req.Title, req.Content, req.IsActive)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(announcement)
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/:id
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.adminService.DeleteAnnouncement(c.UserContext(), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}

// BroadcastMessage handles POST /api/admin/broadcast
func (s *Server) BroadcastMessage(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sent, err := s.chatService.Broadcast(c.UserContext(), currentUserID(c), req.Message)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"conversations_reached": sent})
}
