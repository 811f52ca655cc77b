package service

import (
	"context"
	"time"

	"offerhub/internal/models"
	"offerhub/internal/repository"
)

type AchievementService struct {
	achievementRepo repository.AchievementRepository
	awardRepo       repository.UserAchievementRepository
	userRepo        repository.UserRepository
}

type CreateAchievementInput struct {
	Name        string
	Description string
	Icon        string
}

type UpdateAchievementInput struct {
	AchievementID uint
	Name          *string
	Description   *string
	Icon          *string
}

type AwardAchievementInput struct {
	UserID        uint
	AchievementID uint
	NFTTokenID    *string
}

func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	awardRepo repository.UserAchievementRepository,
	userRepo repository.UserRepository,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		awardRepo:       awardRepo,
		userRepo:        userRepo,
	}
}

func (s *AchievementService) CreateAchievement(ctx context.Context, in CreateAchievementInput) (*models.Achievement, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	achievement := &models.Achievement{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
	}
	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementService) GetAchievement(ctx context.Context, id uint) (*models.Achievement, error) {
	return s.achievementRepo.GetByID(ctx, id)
}

func (s *AchievementService) ListAchievements(ctx context.Context, limit, offset int) ([]models.Achievement, error) {
	return s.achievementRepo.List(ctx, limit, offset)
}

func (s *AchievementService) UpdateAchievement(ctx context.Context, in UpdateAchievementInput) (*models.Achievement, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, in.AchievementID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name is required")
		}
		achievement.Name = *in.Name
	}
	if in.Description != nil {
		achievement.Description = *in.Description
	}
	if in.Icon != nil {
		achievement.Icon = *in.Icon
	}

	if err := s.achievementRepo.Update(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementService) DeleteAchievement(ctx context.Context, id uint) error {
	return s.achievementRepo.Delete(ctx, id)
}

// Award grants an achievement to a user. Both must exist; a second grant of
// the same achievement conflicts.
func (s *AchievementService) Award(ctx context.Context, in AwardAchievementInput) (*models.UserAchievement, error) {
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.achievementRepo.GetByID(ctx, in.AchievementID); err != nil {
		return nil, err
	}

	award := &models.UserAchievement{
		UserID:        in.UserID,
		AchievementID: in.AchievementID,
		NFTTokenID:    in.NFTTokenID,
		EarnedAt:      time.Now(),
	}
	if err := s.awardRepo.Create(ctx, award); err != nil {
		return nil, err
	}
	return award, nil
}

func (s *AchievementService) ListUserAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.awardRepo.ListByUser(ctx, userID)
}
