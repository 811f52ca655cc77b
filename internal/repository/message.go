package repository

import (
	"context"
	"errors"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	MarkRead(ctx context.Context, msg *models.Message) error
	Delete(ctx context.Context, id uint) error
	ListByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := readDB(r.db).WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// MarkRead persists only the read_at column; message content is immutable.
func (r *messageRepository) MarkRead(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).
		Model(msg).
		Update("read_at", msg.ReadAt).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

// ListByConversation returns the messages of a conversation oldest-first.
// An unknown conversation yields an empty slice, not an error.
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	if err := readDB(r.db).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Limit(limit).Offset(offset).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}
