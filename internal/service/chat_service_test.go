package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"offerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversationRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.Conversation, error)
	createFn            func(context.Context, *models.Conversation) error
	listByParticipantFn func(context.Context, uint, int, int) ([]models.Conversation, error)
	addParticipantFn    func(context.Context, *models.ConversationParticipant) error
	existsFn            func(context.Context, uint) (bool, error)
}

func (s *conversationRepoStub) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *conversationRepoStub) Create(ctx context.Context, conv *models.Conversation) error {
	return s.createFn(ctx, conv)
}
func (s *conversationRepoStub) ListByParticipant(ctx context.Context, userID uint, limit, offset int) ([]models.Conversation, error) {
	return s.listByParticipantFn(ctx, userID, limit, offset)
}
func (s *conversationRepoStub) AddParticipant(ctx context.Context, p *models.ConversationParticipant) error {
	return s.addParticipantFn(ctx, p)
}
func (s *conversationRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopConversationRepo() *conversationRepoStub {
	return &conversationRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Conversation, error) {
			return &models.Conversation{}, nil
		},
		createFn: func(context.Context, *models.Conversation) error { return nil },
		listByParticipantFn: func(context.Context, uint, int, int) ([]models.Conversation, error) {
			return nil, nil
		},
		addParticipantFn: func(context.Context, *models.ConversationParticipant) error { return nil },
		existsFn:         func(context.Context, uint) (bool, error) { return true, nil },
	}
}

type messageRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.Message, error)
	createFn             func(context.Context, *models.Message) error
	markReadFn           func(context.Context, *models.Message) error
	deleteFn             func(context.Context, uint) error
	listByConversationFn func(context.Context, uint, int, int) ([]models.Message, error)
}

func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, msg *models.Message) error {
	return s.markReadFn(ctx, msg)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) ListByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]models.Message, error) {
	return s.listByConversationFn(ctx, conversationID, limit, offset)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Message, error) {
			return &models.Message{}, nil
		},
		createFn:   func(context.Context, *models.Message) error { return nil },
		markReadFn: func(context.Context, *models.Message) error { return nil },
		deleteFn:   func(context.Context, uint) error { return nil },
		listByConversationFn: func(context.Context, uint, int, int) ([]models.Message, error) {
			return []models.Message{}, nil
		},
	}
}

func TestChatService_CreateConversation_Validation(t *testing.T) {
	t.Parallel()
	svc := NewChatService(noopConversationRepo(), noopMessageRepo(), noopUserRepo())

	t.Run("fewer than two participants", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateConversation(context.Background(), CreateConversationInput{
			ParticipantIDs: []uint{1},
		})
		assertValidationError(t, err)
	})

	t.Run("duplicate participant IDs", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateConversation(context.Background(), CreateConversationInput{
			ParticipantIDs: []uint{1, 1},
		})
		assertValidationError(t, err)
	})
}

func TestChatService_CreateConversation_UnknownParticipant(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 99 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: id, IsActive: true}, nil
	}
	svc := NewChatService(noopConversationRepo(), noopMessageRepo(), userRepo)

	_, err := svc.CreateConversation(context.Background(), CreateConversationInput{
		ParticipantIDs: []uint{1, 99},
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestChatService_SendMessage(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopConversationRepo(), noopMessageRepo(), noopUserRepo())
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			ConversationID: 1,
			SenderID:       1,
		})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopConversationRepo(), noopMessageRepo(), noopUserRepo())
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			ConversationID: 1,
			SenderID:       1,
			Content:        strings.Repeat("x", maxMessageLen+1),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown conversation is not found", func(t *testing.T) {
		t.Parallel()
		convRepo := noopConversationRepo()
		convRepo.existsFn = func(context.Context, uint) (bool, error) { return false, nil }
		svc := NewChatService(convRepo, noopMessageRepo(), noopUserRepo())
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			ConversationID: 42,
			SenderID:       1,
			Content:        "hello",
		})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		msgRepo := noopMessageRepo()
		var created *models.Message
		msgRepo.createFn = func(_ context.Context, m *models.Message) error {
			created = m
			return nil
		}
		svc := NewChatService(noopConversationRepo(), msgRepo, noopUserRepo())
		msg, err := svc.SendMessage(context.Background(), SendMessageInput{
			ConversationID: 1,
			SenderID:       2,
			Content:        "hello",
		})
		require.NoError(t, err)
		assert.Nil(t, msg.ReadAt, "new messages start unread")
		require.NotNil(t, created)
		assert.Equal(t, uint(2), created.SenderID)
	})
}

func TestChatService_MarkMessageRead_Idempotent(t *testing.T) {
	t.Parallel()

	t.Run("first call stamps read_at", func(t *testing.T) {
		t.Parallel()
		msgRepo := noopMessageRepo()
		msgRepo.getByIDFn = func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id, Content: "hi"}, nil
		}
		marked := false
		msgRepo.markReadFn = func(context.Context, *models.Message) error {
			marked = true
			return nil
		}
		svc := NewChatService(noopConversationRepo(), msgRepo, noopUserRepo())
		msg, err := svc.MarkMessageRead(context.Background(), 1)
		require.NoError(t, err)
		assert.NotNil(t, msg.ReadAt)
		assert.True(t, marked)
	})

	t.Run("second call leaves the original stamp", func(t *testing.T) {
		t.Parallel()
		readAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		msgRepo := noopMessageRepo()
		msgRepo.getByIDFn = func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id, Content: "hi", ReadAt: &readAt}, nil
		}
		msgRepo.markReadFn = func(context.Context, *models.Message) error {
			t.Fatal("mark read should not be persisted twice")
			return nil
		}
		svc := NewChatService(noopConversationRepo(), msgRepo, noopUserRepo())
		msg, err := svc.MarkMessageRead(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, msg.ReadAt)
		assert.True(t, msg.ReadAt.Equal(readAt))
	})
}

func TestChatService_ListConversationMessages_UnknownConversation(t *testing.T) {
	t.Parallel()

	// Reading an unknown conversation's history is not an error; it is just
	// empty. Only message sends require the conversation to exist.
	svc := NewChatService(noopConversationRepo(), noopMessageRepo(), noopUserRepo())
	msgs, err := svc.ListConversationMessages(context.Background(), 9999, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
