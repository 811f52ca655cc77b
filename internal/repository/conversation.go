package repository

import (
	"context"
	"errors"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// ConversationRepository defines persistence operations for conversations
// and their participant links.
type ConversationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation) error
	ListByParticipant(ctx context.Context, userID uint, limit, offset int) ([]models.Conversation, error)
	AddParticipant(ctx context.Context, p *models.ConversationParticipant) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository returns a new ConversationRepository implementation.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := readDB(r.db).WithContext(ctx).
		Preload("Participants").
		First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *conversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID uint, limit, offset int) ([]models.Conversation, error) {
	convs := make([]models.Conversation, 0)
	if err := readDB(r.db).WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Limit(limit).Offset(offset).
		Order("conversations.updated_at DESC").
		Find(&convs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return convs, nil
}

func (r *conversationRepository) AddParticipant(ctx context.Context, p *models.ConversationParticipant) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User is already a participant of this conversation")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
