// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateService handles POST /api/services
func (s *Server) CreateService(c *fiber.Ctx) error {
	var req struct {
		FreelancerID     uint    `json:"freelancer_id"`
		Title            string  `json:"title"`
		Description      string  `json:"description"`
		BasePrice        float64 `json:"base_price"`
		Currency         string  `json:"currency"`
		DeliveryTimeDays int     `json:"delivery_time_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	svc, err := s.catalogService.CreateService(c.Context(), service.CreateServiceInput{
		FreelancerID:     req.FreelancerID,
		Title:            req.Title,
		Description:      req.Description,
		BasePrice:        req.BasePrice,
		Currency:         req.Currency,
		DeliveryTimeDays: req.DeliveryTimeDays,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

// GetServices handles GET /api/services?freelancer_id=&is_active=
func (s *Server) GetServices(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	filter := repository.ServiceFilter{
		FreelancerID: queryID(c, "freelancer_id"),
		IsActive:     queryBoolPtr(c, "is_active"),
	}

	services, err := s.catalogService.ListServices(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(services)
}

// GetService handles GET /api/services/:id
func (s *Server) GetService(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	svc, err := s.catalogService.GetService(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(svc)
}

// UpdateService handles PATCH /api/services/:id
func (s *Server) UpdateService(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title            *string  `json:"title"`
		Description      *string  `json:"description"`
		BasePrice        *float64 `json:"base_price"`
		Currency         *string  `json:"currency"`
		DeliveryTimeDays *int     `json:"delivery_time_days"`
		IsActive         *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	svc, err := s.catalogService.UpdateService(c.Context(), service.UpdateServiceInput{
		ServiceID:        id,
		Title:            req.Title,
		Description:      req.Description,
		BasePrice:        req.BasePrice,
		Currency:         req.Currency,
		DeliveryTimeDays: req.DeliveryTimeDays,
		IsActive:         req.IsActive,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(svc)
}

// DeleteService handles DELETE /api/services/:id
func (s *Server) DeleteService(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DeleteService(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetServiceCategories handles GET /api/services/:id/categories
func (s *Server) GetServiceCategories(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	links, err := s.catalogService.ListServiceCategories(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(links)
}
