package service

import (
	"context"

	"offerhub/internal/models"
	"offerhub/internal/repository"
)

type ActivityService struct {
	activityRepo repository.ActivityLogRepository
	userRepo     repository.UserRepository
}

type RecordActivityInput struct {
	UserID uint
	Action string
	Detail string
}

func NewActivityService(activityRepo repository.ActivityLogRepository, userRepo repository.UserRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, userRepo: userRepo}
}

func (s *ActivityService) Record(ctx context.Context, in RecordActivityInput) (*models.ActivityLog, error) {
	if in.Action == "" {
		return nil, models.NewValidationError("Action is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	entry := &models.ActivityLog{
		UserID: in.UserID,
		Action: in.Action,
		Detail: in.Detail,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ActivityService) GetEntry(ctx context.Context, id uint) (*models.ActivityLog, error) {
	return s.activityRepo.GetByID(ctx, id)
}

func (s *ActivityService) ListEntries(ctx context.Context, filter repository.ActivityLogFilter, limit, offset int) ([]models.ActivityLog, error) {
	return s.activityRepo.List(ctx, filter, limit, offset)
}
