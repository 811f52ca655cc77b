package service

import (
	"context"
	"errors"
	"testing"

	"offerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skillRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Skill, error)
	createFn  func(context.Context, *models.Skill) error
	updateFn  func(context.Context, *models.Skill) error
	deleteFn  func(context.Context, uint) error
	listFn    func(context.Context, int, int) ([]models.Skill, error)
}

func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *skillRepoStub) List(ctx context.Context, limit, offset int) ([]models.Skill, error) {
	return s.listFn(ctx, limit, offset)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
			return &models.Skill{ID: id, Name: "Go"}, nil
		},
		createFn: func(context.Context, *models.Skill) error { return nil },
		updateFn: func(context.Context, *models.Skill) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		listFn:   func(context.Context, int, int) ([]models.Skill, error) { return nil, nil },
	}
}

func newTestSkillService(skills *skillRepoStub, fs *freelancerSkillRepoStub, users *userRepoStub) *SkillService {
	return NewSkillService(skills, fs, users)
}

func TestSkillService_CreateSkill_EmptyName(t *testing.T) {
	t.Parallel()
	svc := newTestSkillService(noopSkillRepo(), noopFreelancerSkillRepo(), noopUserRepo())

	_, err := svc.CreateSkill(context.Background(), "")
	assertValidationError(t, err)
}

func TestSkillService_UpdateSkill(t *testing.T) {
	t.Parallel()

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		svc := newTestSkillService(noopSkillRepo(), noopFreelancerSkillRepo(), noopUserRepo())
		_, err := svc.UpdateSkill(context.Background(), 1, "")
		assertValidationError(t, err)
	})

	t.Run("rename persisted", func(t *testing.T) {
		t.Parallel()
		var saved *models.Skill
		skills := noopSkillRepo()
		skills.updateFn = func(_ context.Context, s *models.Skill) error {
			saved = s
			return nil
		}
		svc := newTestSkillService(skills, noopFreelancerSkillRepo(), noopUserRepo())

		skill, err := svc.UpdateSkill(context.Background(), 1, "Golang")
		require.NoError(t, err)
		assert.Equal(t, "Golang", skill.Name)
		require.NotNil(t, saved)
		assert.Equal(t, "Golang", saved.Name)
	})
}

func TestSkillService_AddFreelancerSkill(t *testing.T) {
	t.Parallel()

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		svc := newTestSkillService(noopSkillRepo(), noopFreelancerSkillRepo(), noopUserRepo())
		_, err := svc.AddFreelancerSkill(context.Background(), AddFreelancerSkillInput{
			UserID: 1, SkillID: 1, ExperienceLevel: "guru",
		})
		assertValidationError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := newTestSkillService(noopSkillRepo(), noopFreelancerSkillRepo(), users)

		_, err := svc.AddFreelancerSkill(context.Background(), AddFreelancerSkillInput{
			UserID: 99, SkillID: 1, ExperienceLevel: models.ExperienceBeginner,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("unknown skill", func(t *testing.T) {
		t.Parallel()
		skills := noopSkillRepo()
		skills.getByIDFn = func(_ context.Context, id uint) (*models.Skill, error) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		svc := newTestSkillService(skills, noopFreelancerSkillRepo(), noopUserRepo())

		_, err := svc.AddFreelancerSkill(context.Background(), AddFreelancerSkillInput{
			UserID: 1, SkillID: 99, ExperienceLevel: models.ExperienceBeginner,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var created *models.FreelancerSkill
		fsRepo := noopFreelancerSkillRepo()
		fsRepo.createFn = func(_ context.Context, fs *models.FreelancerSkill) error {
			created = fs
			return nil
		}
		svc := newTestSkillService(noopSkillRepo(), fsRepo, noopUserRepo())

		fs, err := svc.AddFreelancerSkill(context.Background(), AddFreelancerSkillInput{
			UserID: 1, SkillID: 2, ExperienceLevel: models.ExperienceExpert,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ExperienceExpert, fs.ExperienceLevel)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.UserID)
		assert.Equal(t, uint(2), created.SkillID)
	})
}

func TestSkillService_UpdateFreelancerSkill_InvalidLevel(t *testing.T) {
	t.Parallel()
	svc := newTestSkillService(noopSkillRepo(), noopFreelancerSkillRepo(), noopUserRepo())

	_, err := svc.UpdateFreelancerSkill(context.Background(), 1, 1, "wizard")
	assertValidationError(t, err)
}

func TestSkillService_ListFreelancerSkills_UnknownUser(t *testing.T) {
	t.Parallel()
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	fsRepo := noopFreelancerSkillRepo()
	fsRepo.listByUserFn = func(context.Context, uint) ([]models.FreelancerSkill, error) {
		return nil, errors.New("must not be reached")
	}
	svc := newTestSkillService(noopSkillRepo(), fsRepo, users)

	_, err := svc.ListFreelancerSkills(context.Background(), 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
