package service

import (
	"context"

	"offerhub/internal/models"
	"offerhub/internal/repository"
)

type SkillService struct {
	skillRepo           repository.SkillRepository
	freelancerSkillRepo repository.FreelancerSkillRepository
	userRepo            repository.UserRepository
}

type AddFreelancerSkillInput struct {
	UserID          uint
	SkillID         uint
	ExperienceLevel models.ExperienceLevel
}

func NewSkillService(
	skillRepo repository.SkillRepository,
	freelancerSkillRepo repository.FreelancerSkillRepository,
	userRepo repository.UserRepository,
) *SkillService {
	return &SkillService{
		skillRepo:           skillRepo,
		freelancerSkillRepo: freelancerSkillRepo,
		userRepo:            userRepo,
	}
}

func (s *SkillService) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	skill := &models.Skill{Name: name}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) GetSkill(ctx context.Context, id uint) (*models.Skill, error) {
	return s.skillRepo.GetByID(ctx, id)
}

func (s *SkillService) ListSkills(ctx context.Context, limit, offset int) ([]models.Skill, error) {
	return s.skillRepo.List(ctx, limit, offset)
}

func (s *SkillService) UpdateSkill(ctx context.Context, id uint, name string) (*models.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	skill.Name = name
	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(ctx context.Context, id uint) error {
	return s.skillRepo.Delete(ctx, id)
}

// AddFreelancerSkill attaches a skill to a freelancer. Both the user and the
// skill must exist; attaching twice conflicts.
func (s *SkillService) AddFreelancerSkill(ctx context.Context, in AddFreelancerSkillInput) (*models.FreelancerSkill, error) {
	if !in.ExperienceLevel.Valid() {
		return nil, models.NewValidationError("Experience level is invalid")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.skillRepo.GetByID(ctx, in.SkillID); err != nil {
		return nil, err
	}

	fs := &models.FreelancerSkill{
		UserID:          in.UserID,
		SkillID:         in.SkillID,
		ExperienceLevel: in.ExperienceLevel,
	}
	if err := s.freelancerSkillRepo.Create(ctx, fs); err != nil {
		return nil, err
	}
	return fs, nil
}

func (s *SkillService) GetFreelancerSkill(ctx context.Context, userID, skillID uint) (*models.FreelancerSkill, error) {
	return s.freelancerSkillRepo.Get(ctx, userID, skillID)
}

func (s *SkillService) UpdateFreelancerSkill(ctx context.Context, userID, skillID uint, level models.ExperienceLevel) (*models.FreelancerSkill, error) {
	if !level.Valid() {
		return nil, models.NewValidationError("Experience level is invalid")
	}

	fs, err := s.freelancerSkillRepo.Get(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}

	fs.ExperienceLevel = level
	if err := s.freelancerSkillRepo.Update(ctx, fs); err != nil {
		return nil, err
	}
	return fs, nil
}

func (s *SkillService) RemoveFreelancerSkill(ctx context.Context, userID, skillID uint) error {
	return s.freelancerSkillRepo.Delete(ctx, userID, skillID)
}

func (s *SkillService) ListFreelancerSkills(ctx context.Context, userID uint) ([]models.FreelancerSkill, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.freelancerSkillRepo.ListByUser(ctx, userID)
}
