// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAchievement handles POST /api/achievements (admin only)
func (s *Server) CreateAchievement(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	achievement, err := s.achievementService.CreateAchievement(c.Context(), service.CreateAchievementInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

// GetAchievements handles GET /api/achievements
func (s *Server) GetAchievements(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)

	achievements, err := s.achievementService.ListAchievements(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(achievements)
}

// GetAchievement handles GET /api/achievements/:id
func (s *Server) GetAchievement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	achievement, err := s.achievementService.GetAchievement(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(achievement)
}

// UpdateAchievement handles PATCH /api/achievements/:id (admin only)
func (s *Server) UpdateAchievement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	achievement, err := s.achievementService.UpdateAchievement(c.Context(), service.UpdateAchievementInput{
		AchievementID: id,
		Name:          req.Name,
		Description:   req.Description,
		Icon:          req.Icon,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(achievement)
}

// DeleteAchievement handles DELETE /api/achievements/:id (admin only)
func (s *Server) DeleteAchievement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.achievementService.DeleteAchievement(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AwardAchievement handles POST /api/users/:id/achievements
func (s *Server) AwardAchievement(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		AchievementID uint    `json:"achievement_id"`
		NFTTokenID    *string `json:"nft_token_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.AchievementID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("achievement_id is required"))
	}

	award, err := s.achievementService.Award(c.Context(), service.AwardAchievementInput{
		UserID:        userID,
		AchievementID: req.AchievementID,
		NFTTokenID:    req.NFTTokenID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(award)
}

// GetUserAchievements handles GET /api/users/:id/achievements
func (s *Server) GetUserAchievements(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	awards, err := s.achievementService.ListUserAchievements(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(awards)
}
