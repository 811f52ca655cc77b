// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordActivity handles POST /api/activity-logs
func (s *Server) RecordActivity(c *fiber.Ctx) error {
	var req struct {
		UserID uint   `json:"user_id"`
		Action string `json:"action"`
		Detail string `json:"detail"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		req.UserID = c.Locals("userID").(uint)
	}

	entry, err := s.activityService.Record(c.Context(), service.RecordActivityInput{
		UserID: req.UserID,
		Action: req.Action,
		Detail: req.Detail,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetActivityLogs handles GET /api/activity-logs?user_id=&action=
func (s *Server) GetActivityLogs(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	filter := repository.ActivityLogFilter{
		UserID: queryID(c, "user_id"),
		Action: c.Query("action"),
	}

	entries, err := s.activityService.ListEntries(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(entries)
}

// GetActivityLog handles GET /api/activity-logs/:id
func (s *Server) GetActivityLog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.activityService.GetEntry(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(entry)
}
