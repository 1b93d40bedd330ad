package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

type skillRequest struct {
	Name        string `json:"skill_name"`
	Type        string `json:"skill_type"`
	Description string `json:"description"`
}

// BrowseSkills handles GET /api/skills
func (s *Server) BrowseSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	skillType := models.SkillType(c.Query("type"))
	search := c.Query("search")

	skills, total, err := s.skillService.Browse(c.UserContext(), skillType, search, p.Limit, p.Offset)
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

// GetMySkills handles GET /api/skills/me
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	skills, err := s.skillService.ListMine(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"skills": skills})
}

// CreateSkill handles POST /api/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req skillRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.Submit(c.UserContext(), currentUserID(c),
		req.Name, models.SkillType(req.Type), req.Description)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// ResubmitSkill handles PUT /api/skills/:id/resubmit
func (s *Server) ResubmitSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req skillRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, svcErr := s.skillService.Resubmit(c.UserContext(), currentUserID(c), id,
		req.Name, models.SkillType(req.Type), req.Description)
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(skill)
}

// DeleteSkill handles DELETE /api/skills/:id
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.skillService.Delete(c.UserContext(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Skill deleted"})
}
