// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"offerhub/internal/models"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateConversation handles POST /api/conversations
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	var req struct {
		ProjectID      *uint  `json:"project_id"`
		ParticipantIDs []uint `json:"participant_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conv, err := s.chatService.CreateConversation(c.Context(), service.CreateConversationInput{
		ProjectID:      req.ProjectID,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations handles GET /api/conversations?user_id=
// Without a user_id filter the caller's own conversations are returned.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)

	userID := queryID(c, "user_id")
	if userID == 0 {
		userID = c.Locals("userID").(uint)
	}

	convs, err := s.chatService.ListConversations(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(convs)
}

// GetConversation handles GET /api/conversations/:id
func (s *Server) GetConversation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	conv, err := s.chatService.GetConversation(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(conv)
}

// AddParticipant handles POST /api/conversations/:id/participants
func (s *Server) AddParticipant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	conv, err := s.chatService.AddParticipant(c.Context(), id, req.UserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ConversationID uint   `json:"conversation_id"`
		SenderID       uint   `json:"sender_id"`
		Content        string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SenderID == 0 {
		req.SenderID = c.Locals("userID").(uint)
	}

	msg, err := s.chatService.SendMessage(c.Context(), service.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		Content:        req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetMessage handles GET /api/messages/:id
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.chatService.GetMessage(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(msg)
}

// MarkMessageRead handles PATCH /api/messages/:id/read
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.chatService.MarkMessageRead(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(msg)
}

// DeleteMessage handles DELETE /api/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.chatService.DeleteMessage(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetConversationMessages handles GET /api/messages/conversation/:conversationId.
// An unknown conversation returns an empty array, not a 404.
func (s *Server) GetConversationMessages(c *fiber.Ctx) error {
	conversationID, err := s.parseID(c, "conversationId")
	if err != nil {
		return nil
	}

	page := parsePagination(c, defaultPaginationLimit)

	msgs, err := s.chatService.ListConversationMessages(c.Context(), conversationID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(msgs)
}
