// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		FromUserID uint   `json:"from_user_id"`
		ToUserID   uint   `json:"to_user_id"`
		ProjectID  *uint  `json:"project_id"`
		Score      int    `json:"score"`
		Comment    string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.FromUserID == 0 {
		req.FromUserID = c.Locals("userID").(uint)
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		ProjectID:  req.ProjectID,
		Score:      req.Score,
		Comment:    req.Comment,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /api/reviews?to_user_id=&from_user_id=
func (s *Server) GetReviews(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	filter := repository.ReviewFilter{
		ToUserID:   queryID(c, "to_user_id"),
		FromUserID: queryID(c, "from_user_id"),
	}

	reviews, err := s.reviewService.ListReviews(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(reviews)
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserReviewSummary handles GET /api/users/:id/reviews/summary
func (s *Server) GetUserReviewSummary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.reviewService.Summary(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(summary)
}
