// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTransaction handles POST /api/transactions
func (s *Server) CreateTransaction(c *fiber.Ctx) error {
	var req struct {
		FromUserID      uint    `json:"from_user_id"`
		ToUserID        uint    `json:"to_user_id"`
		ProjectID       *uint   `json:"project_id"`
		Amount          float64 `json:"amount"`
		Currency        string  `json:"currency"`
		TransactionHash string  `json:"transaction_hash"`
		Type            string  `json:"type"`
		Status          string  `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tx, err := s.transactionService.CreateTransaction(c.Context(), service.CreateTransactionInput{
		FromUserID:      req.FromUserID,
		ToUserID:        req.ToUserID,
		ProjectID:       req.ProjectID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		TransactionHash: req.TransactionHash,
		Type:            models.TransactionType(req.Type),
		Status:          models.TransactionStatus(req.Status),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// GetTransactions handles GET /api/transactions?user_id=&status=
func (s *Server) GetTransactions(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	filter := repository.TransactionFilter{
		UserID: queryID(c, "user_id"),
		Status: models.TransactionStatus(c.Query("status")),
	}

	txs, err := s.transactionService.ListTransactions(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(txs)
}

// GetTransaction handles GET /api/transactions/:id
func (s *Server) GetTransaction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tx, err := s.transactionService.GetTransaction(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(tx)
}

// GetTransactionByHash handles GET /api/transactions/hash/:hash
func (s *Server) GetTransactionByHash(c *fiber.Ctx) error {
	tx, err := s.transactionService.GetTransactionByHash(c.Context(), c.Params("hash"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(tx)
}

// UpdateTransactionStatus handles PATCH /api/transactions/:id/status
func (s *Server) UpdateTransactionStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tx, err := s.transactionService.UpdateStatus(c.Context(), id, models.TransactionStatus(req.Status))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(tx)
}

// UpdateTransaction handles PATCH /api/transactions/:id
func (s *Server) UpdateTransaction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Amount    *float64 `json:"amount"`
		Currency  *string  `json:"currency"`
		ProjectID *uint    `json:"project_id"`
		Type      *string  `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateTransactionInput{
		TransactionID: id,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ProjectID:     req.ProjectID,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		in.Type = &t
	}

	tx, err := s.transactionService.UpdateTransaction(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(tx)
}

// DeleteTransaction handles DELETE /api/transactions/:id (admin only)
func (s *Server) DeleteTransaction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.transactionService.DeleteTransaction(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
