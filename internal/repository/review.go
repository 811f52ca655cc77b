package repository

import (
	"context"
	"errors"

	"offerhub/internal/cache"
	"offerhub/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ReviewFilter, limit, offset int) ([]models.Review, error)
	SummaryForUser(ctx context.Context, userID uint) (*models.ReviewSummary, error)
}

// ReviewFilter narrows List results. Zero fields are ignored.
type ReviewFilter struct {
	ToUserID   uint
	FromUserID uint
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := readDB(r.db).WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateReviewSummary(ctx, review.ToUserID)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	review, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	cache.InvalidateReviewSummary(ctx, review.ToUserID)
	return nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, limit, offset int) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	q := readDB(r.db).WithContext(ctx)
	if filter.ToUserID != 0 {
		q = q.Where("to_user_id = ?", filter.ToUserID)
	}
	if filter.FromUserID != 0 {
		q = q.Where("from_user_id = ?", filter.FromUserID)
	}
	if err := q.Limit(limit).Offset(offset).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// SummaryForUser aggregates count and average score of the reviews a user
// received. Users with no reviews get a zero summary, not an error.
func (r *reviewRepository) SummaryForUser(ctx context.Context, userID uint) (*models.ReviewSummary, error) {
	summary := models.ReviewSummary{UserID: userID}
	key := cache.ReviewSummaryKey(userID)

	err := cache.Aside(ctx, key, &summary, cache.ReviewSummaryTTL, func() error {
		row := struct {
			Count int64
			Avg   *float64
		}{}
		if err := readDB(r.db).WithContext(ctx).
			Model(&models.Review{}).
			Select("COUNT(*) AS count, AVG(score) AS avg").
			Where("to_user_id = ?", userID).
			Scan(&row).Error; err != nil {
			return models.NewInternalError(err)
		}
		summary.Count = row.Count
		if row.Avg != nil {
			summary.AverageScore = *row.Avg
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &summary, nil
}
