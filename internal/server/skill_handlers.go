// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSkill handles POST /api/skills
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.CreateSkill(c.Context(), req.Name)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// GetSkills handles GET /api/skills
func (s *Server) GetSkills(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)

	skills, err := s.skillService.ListSkills(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(skills)
}

// GetSkill handles GET /api/skills/:id
func (s *Server) GetSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skill, err := s.skillService.GetSkill(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(skill)
}

// UpdateSkill handles PATCH /api/skills/:id
func (s *Server) UpdateSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.UpdateSkill(c.Context(), id, req.Name)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(skill)
}

// DeleteSkill handles DELETE /api/skills/:id
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.skillService.DeleteSkill(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddFreelancerSkill handles POST /api/freelancer-skills
func (s *Server) AddFreelancerSkill(c *fiber.Ctx) error {
	var req struct {
		UserID          uint   `json:"user_id"`
		SkillID         uint   `json:"skill_id"`
		ExperienceLevel string `json:"experience_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.SkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id and skill_id are required"))
	}

	fs, err := s.skillService.AddFreelancerSkill(c.Context(), service.AddFreelancerSkillInput{
		UserID:          req.UserID,
		SkillID:         req.SkillID,
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fs)
}

// GetFreelancerSkill handles GET /api/freelancer-skills/:userId/:skillId
func (s *Server) GetFreelancerSkill(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	fs, err := s.skillService.GetFreelancerSkill(c.Context(), userID, skillID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fs)
}

// UpdateFreelancerSkill handles PATCH /api/freelancer-skills/:userId/:skillId
func (s *Server) UpdateFreelancerSkill(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	var req struct {
		ExperienceLevel string `json:"experience_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fs, err := s.skillService.UpdateFreelancerSkill(c.Context(), userID, skillID,
		models.ExperienceLevel(req.ExperienceLevel))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fs)
}

// RemoveFreelancerSkill handles DELETE /api/freelancer-skills/:userId/:skillId
func (s *Server) RemoveFreelancerSkill(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	if err := s.skillService.RemoveFreelancerSkill(c.Context(), userID, skillID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserSkills handles GET /api/users/:id/skills
func (s *Server) GetUserSkills(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skills, err := s.skillService.ListFreelancerSkills(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(skills)
}
