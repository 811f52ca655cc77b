package repository

import (
	"context"
	"errors"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository defines persistence operations for the audit trail.
// Entries are append-only; there is no update or delete.
type ActivityLogRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ActivityLog, error)
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter, limit, offset int) ([]models.ActivityLog, error)
}

// ActivityLogFilter narrows List results. Zero fields are ignored.
type ActivityLogFilter struct {
	UserID uint
	Action string
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository returns a new ActivityLogRepository implementation.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) GetByID(ctx context.Context, id uint) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	if err := readDB(r.db).WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ActivityLog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter, limit, offset int) ([]models.ActivityLog, error) {
	entries := make([]models.ActivityLog, 0)
	q := readDB(r.db).WithContext(ctx)
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if err := q.Limit(limit).Offset(offset).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
