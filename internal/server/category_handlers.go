// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory handles POST /api/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.catalogService.CreateCategory(c.Context(), service.CreateCategoryInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)

	categories, err := s.catalogService.ListCategories(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(categories)
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.catalogService.GetCategory(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(category)
}

// GetCategoryBySlug handles GET /api/categories/slug/:slug
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) error {
	category, err := s.catalogService.GetCategoryBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(category)
}

// UpdateCategory handles PATCH /api/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.catalogService.UpdateCategory(c.Context(), service.UpdateCategoryInput{
		CategoryID: id,
		Name:       req.Name,
		Slug:       req.Slug,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DeleteCategory(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LinkServiceCategory handles POST /api/service-categories
func (s *Server) LinkServiceCategory(c *fiber.Ctx) error {
	var req struct {
		ServiceID  uint `json:"service_id"`
		CategoryID uint `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ServiceID == 0 || req.CategoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("service_id and category_id are required"))
	}

	link, err := s.catalogService.LinkServiceCategory(c.Context(), req.ServiceID, req.CategoryID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// UnlinkServiceCategory handles DELETE /api/service-categories/:serviceId/:categoryId
func (s *Server) UnlinkServiceCategory(c *fiber.Ctx) error {
	serviceID, err := s.parseID(c, "serviceId")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	if err := s.catalogService.UnlinkServiceCategory(c.Context(), serviceID, categoryID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
