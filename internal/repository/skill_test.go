package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"offerhub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSkillRepository_Create_DuplicateName(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "skills"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_skills_name" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Skill{Name: "Go"})
	assert.Error(t, err)
	var appErr *models.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, "CONFLICT", appErr.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFreelancerSkillRepository_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFreelancerSkillRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "skill_id", "experience_level"}).
			AddRow(1, 2, "expert")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "freelancer_skills" WHERE user_id = $1 AND skill_id = $2`)).
			WithArgs(1, 2, 1).
			WillReturnRows(rows)

		fs, err := repo.Get(ctx, 1, 2)
		assert.NoError(t, err)
		assert.NotNil(t, fs)
		assert.Equal(t, models.ExperienceExpert, fs.ExperienceLevel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "freelancer_skills" WHERE user_id = $1 AND skill_id = $2`)).
			WithArgs(9, 9, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		fs, err := repo.Get(ctx, 9, 9)
		assert.Error(t, err)
		assert.Nil(t, fs)
		var appErr *models.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, "NOT_FOUND", appErr.Code)
			assert.Contains(t, appErr.Message, "9/9")
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFreelancerSkillRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFreelancerSkillRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "freelancer_skills" WHERE user_id = $1 AND skill_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 1, 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "freelancer_skills" WHERE user_id = $1 AND skill_id = $2`)).
			WithArgs(1, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 1, 99)
		assert.Error(t, err)
		var appErr *models.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, "NOT_FOUND", appErr.Code)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFreelancerSkillRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFreelancerSkillRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "freelancer_skills" SET "experience_level"=$1`)).
		WithArgs("intermediate", 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(ctx, &models.FreelancerSkill{
		UserID:          1,
		SkillID:         2,
		ExperienceLevel: models.ExperienceIntermediate,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
