package service

import (
	"context"

	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/validation"
)

const maxCommentLen = 2000

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

type CreateReviewInput struct {
	FromUserID uint
	ToUserID   uint
	ProjectID  *uint
	Score      int
	Comment    string
}

func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, userRepo: userRepo}
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.FromUserID == in.ToUserID {
		return nil, models.NewValidationError("Users cannot review themselves")
	}
	if err := validation.ValidateScore(in.Score); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Comment) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.userRepo.GetByID(ctx, in.FromUserID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.ToUserID); err != nil {
		return nil, err
	}

	review := &models.Review{
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		ProjectID:  in.ProjectID,
		Score:      in.Score,
		Comment:    in.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *ReviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter, limit, offset int) ([]models.Review, error) {
	return s.reviewRepo.List(ctx, filter, limit, offset)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uint) error {
	return s.reviewRepo.Delete(ctx, id)
}

// Summary returns count and average score of the reviews a user received.
// The user must exist; a zero summary is returned when they have no reviews.
func (s *ReviewService) Summary(ctx context.Context, userID uint) (*models.ReviewSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.reviewRepo.SummaryForUser(ctx, userID)
}
