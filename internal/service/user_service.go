package service

import (
	"context"
	"time"

	"offerhub/internal/middleware"
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/validation"
)

type UserService struct {
	userRepo        repository.UserRepository
	skillRepo       repository.FreelancerSkillRepository
	achievementRepo repository.UserAchievementRepository
	activityRepo    repository.ActivityLogRepository
}

type RegisterInput struct {
	WalletAddress string
	Username      string
	Email         *string
	IsFreelancer  bool
}

type UpdateUserInput struct {
	UserID           uint
	Username         *string
	Email            *string
	IsFreelancer     *bool
	TwoFactorEnabled *bool
}

func NewUserService(
	userRepo repository.UserRepository,
	skillRepo repository.FreelancerSkillRepository,
	achievementRepo repository.UserAchievementRepository,
	activityRepo repository.ActivityLogRepository,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		skillRepo:       skillRepo,
		achievementRepo: achievementRepo,
		activityRepo:    activityRepo,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateWalletAddress(in.WalletAddress); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	user := &models.User{
		WalletAddress: in.WalletAddress,
		Username:      in.Username,
		Email:         in.Email,
		IsFreelancer:  in.IsFreelancer,
		IsActive:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, "user.registered", user.Username)
	return user, nil
}

// Login resolves a wallet address to its account and stamps last_login.
// Deactivated accounts are refused.
func (s *UserService) Login(ctx context.Context, walletAddress string) (*models.User, error) {
	if err := validation.ValidateWalletAddress(walletAddress); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", walletAddress)
	}
	if !user.IsActive {
		return nil, models.NewForbiddenError("Account is deactivated")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, "user.login", "")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, filter, limit, offset)
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.IsFreelancer != nil {
		user.IsFreelancer = *in.IsFreelancer
	}
	if in.TwoFactorEnabled != nil {
		user.TwoFactorEnabled = *in.TwoFactorEnabled
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// Deactivate flips is_active off without deleting the row. Already
// deactivated accounts are left untouched.
func (s *UserService) Deactivate(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return user, nil
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, "user.deactivated", "")
	return user, nil
}

// GetProfile assembles the public profile shape: account fields plus the
// user's skills and earned achievements.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	achievements, err := s.achievementRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
		Username:      user.Username,
		Email:         user.Email,
		IsFreelancer:  user.IsFreelancer,
		CreatedAt:     user.CreatedAt,
		Skills:        skills,
		Achievements:  achievements,
	}, nil
}

// recordActivity writes an audit entry best-effort; a failed write never
// fails the request that triggered it.
func (s *UserService) recordActivity(ctx context.Context, userID uint, action, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry := &models.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		middleware.Logger.WarnContext(ctx, "activity log write failed",
			"action", action, "error", err)
	}
}
