package repository

import (
	"context"
	"errors"
	"fmt"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for the skill catalog.
type SkillRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	Create(ctx context.Context, s *models.Skill) error
	Update(ctx context.Context, s *models.Skill) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Skill, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var s models.Skill
	if err := readDB(r.db).WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &s, nil
}

func (r *skillRepository) Create(ctx context.Context, s *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Skill with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Update(ctx context.Context, s *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Skill with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Skill{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}

func (r *skillRepository) List(ctx context.Context, limit, offset int) ([]models.Skill, error) {
	skills := make([]models.Skill, 0)
	if err := readDB(r.db).WithContext(ctx).Limit(limit).Offset(offset).Order("id").Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

// FreelancerSkillRepository defines persistence operations for the
// composite-keyed user/skill join.
type FreelancerSkillRepository interface {
	Get(ctx context.Context, userID, skillID uint) (*models.FreelancerSkill, error)
	Create(ctx context.Context, fs *models.FreelancerSkill) error
	Update(ctx context.Context, fs *models.FreelancerSkill) error
	Delete(ctx context.Context, userID, skillID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.FreelancerSkill, error)
}

type freelancerSkillRepository struct {
	db *gorm.DB
}

// NewFreelancerSkillRepository returns a new FreelancerSkillRepository implementation.
func NewFreelancerSkillRepository(db *gorm.DB) FreelancerSkillRepository {
	return &freelancerSkillRepository{db: db}
}

func compositeSkillID(userID, skillID uint) string {
	return fmt.Sprintf("%d/%d", userID, skillID)
}

func (r *freelancerSkillRepository) Get(ctx context.Context, userID, skillID uint) (*models.FreelancerSkill, error) {
	var fs models.FreelancerSkill
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		First(&fs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FreelancerSkill", compositeSkillID(userID, skillID))
		}
		return nil, models.NewInternalError(err)
	}
	return &fs, nil
}

func (r *freelancerSkillRepository) Create(ctx context.Context, fs *models.FreelancerSkill) error {
	if err := r.db.WithContext(ctx).Create(fs).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Freelancer already has this skill")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *freelancerSkillRepository) Update(ctx context.Context, fs *models.FreelancerSkill) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FreelancerSkill{}).
		Where("user_id = ? AND skill_id = ?", fs.UserID, fs.SkillID).
		Update("experience_level", fs.ExperienceLevel).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *freelancerSkillRepository) Delete(ctx context.Context, userID, skillID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&models.FreelancerSkill{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("FreelancerSkill", compositeSkillID(userID, skillID))
	}
	return nil
}

func (r *freelancerSkillRepository) ListByUser(ctx context.Context, userID uint) ([]models.FreelancerSkill, error) {
	skills := make([]models.FreelancerSkill, 0)
	if err := readDB(r.db).WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("skill_id").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}
