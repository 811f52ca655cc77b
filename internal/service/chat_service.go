package service

import (
	"context"
	"time"

	"offerhub/internal/models"
	"offerhub/internal/repository"
)

const maxMessageLen = 10000

type ChatService struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
}

type CreateConversationInput struct {
	ProjectID      *uint
	ParticipantIDs []uint
}

type SendMessageInput struct {
	ConversationID uint
	SenderID       uint
	Content        string
}

func NewChatService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *ChatService {
	return &ChatService{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		userRepo: userRepo,
	}
}

func (s *ChatService) CreateConversation(ctx context.Context, in CreateConversationInput) (*models.Conversation, error) {
	if len(in.ParticipantIDs) < 2 {
		return nil, models.NewValidationError("A conversation needs at least two participants")
	}

	seen := make(map[uint]bool, len(in.ParticipantIDs))
	for _, id := range in.ParticipantIDs {
		if seen[id] {
			return nil, models.NewValidationError("Duplicate participant IDs")
		}
		seen[id] = true
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	conv := &models.Conversation{ProjectID: in.ProjectID}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	for _, id := range in.ParticipantIDs {
		p := &models.ConversationParticipant{ConversationID: conv.ID, UserID: id}
		if err := s.convRepo.AddParticipant(ctx, p); err != nil {
			return nil, err
		}
	}

	return s.convRepo.GetByID(ctx, conv.ID)
}

func (s *ChatService) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.convRepo.GetByID(ctx, id)
}

func (s *ChatService) ListConversations(ctx context.Context, userID uint, limit, offset int) ([]models.Conversation, error) {
	return s.convRepo.ListByParticipant(ctx, userID, limit, offset)
}

func (s *ChatService) AddParticipant(ctx context.Context, conversationID, userID uint) (*models.Conversation, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.convRepo.GetByID(ctx, conversationID); err != nil {
		return nil, err
	}

	p := &models.ConversationParticipant{ConversationID: conversationID, UserID: userID}
	if err := s.convRepo.AddParticipant(ctx, p); err != nil {
		return nil, err
	}

	return s.convRepo.GetByID(ctx, conversationID)
}

func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 10000 characters)")
	}

	exists, err := s.convRepo.Exists(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Conversation", in.ConversationID)
	}
	if _, err := s.userRepo.GetByID(ctx, in.SenderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Content:        in.Content,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.msgRepo.GetByID(ctx, id)
}

// MarkMessageRead stamps read_at on first call and is a no-op afterwards.
func (s *ChatService) MarkMessageRead(ctx context.Context, id uint) (*models.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.ReadAt != nil {
		return msg, nil
	}

	now := time.Now()
	msg.ReadAt = &now
	if err := s.msgRepo.MarkRead(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, id uint) error {
	return s.msgRepo.Delete(ctx, id)
}

// ListConversationMessages does not require the conversation to exist; an
// unknown conversation reads as an empty history.
func (s *ChatService) ListConversationMessages(ctx context.Context, conversationID uint, limit, offset int) ([]models.Message, error) {
	return s.msgRepo.ListByConversation(ctx, conversationID, limit, offset)
}
