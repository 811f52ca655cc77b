package repository

import (
	"context"
	"errors"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// AchievementRepository defines persistence operations for the achievement
// catalog.
type AchievementRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Achievement, error)
	Create(ctx context.Context, a *models.Achievement) error
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Achievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository returns a new AchievementRepository implementation.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) GetByID(ctx context.Context, id uint) (*models.Achievement, error) {
	var a models.Achievement
	if err := readDB(r.db).WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Achievement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &a, nil
}

func (r *achievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Achievement with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *achievementRepository) Update(ctx context.Context, a *models.Achievement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Achievement with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *achievementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Achievement{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Achievement", id)
	}
	return nil
}

func (r *achievementRepository) List(ctx context.Context, limit, offset int) ([]models.Achievement, error) {
	achievements := make([]models.Achievement, 0)
	if err := readDB(r.db).WithContext(ctx).Limit(limit).Offset(offset).Order("id").Find(&achievements).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return achievements, nil
}

// UserAchievementRepository defines persistence operations for awarded
// achievements.
type UserAchievementRepository interface {
	Create(ctx context.Context, ua *models.UserAchievement) error
	ListByUser(ctx context.Context, userID uint) ([]models.UserAchievement, error)
}

type userAchievementRepository struct {
	db *gorm.DB
}

// NewUserAchievementRepository returns a new UserAchievementRepository implementation.
func NewUserAchievementRepository(db *gorm.DB) UserAchievementRepository {
	return &userAchievementRepository{db: db}
}

func (r *userAchievementRepository) Create(ctx context.Context, ua *models.UserAchievement) error {
	if err := r.db.WithContext(ctx).Create(ua).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already earned this achievement")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userAchievementRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	awards := make([]models.UserAchievement, 0)
	if err := readDB(r.db).WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return awards, nil
}
