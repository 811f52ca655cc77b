package repository

import (
	"context"
	"errors"
	"fmt"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for the category catalog.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := readDB(r.db).WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &c, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := readDB(r.db).WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Category with this name or slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Category with this name or slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category", id)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, limit, offset int) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := readDB(r.db).WithContext(ctx).Limit(limit).Offset(offset).Order("id").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// ServiceCategoryRepository defines persistence operations for the
// composite-keyed service/category join.
type ServiceCategoryRepository interface {
	Create(ctx context.Context, sc *models.ServiceCategory) error
	Delete(ctx context.Context, serviceID, categoryID uint) error
	ListByService(ctx context.Context, serviceID uint) ([]models.ServiceCategory, error)
}

type serviceCategoryRepository struct {
	db *gorm.DB
}

// NewServiceCategoryRepository returns a new ServiceCategoryRepository implementation.
func NewServiceCategoryRepository(db *gorm.DB) ServiceCategoryRepository {
	return &serviceCategoryRepository{db: db}
}

func (r *serviceCategoryRepository) Create(ctx context.Context, sc *models.ServiceCategory) error {
	if err := r.db.WithContext(ctx).Create(sc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Service is already linked to this category")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *serviceCategoryRepository) Delete(ctx context.Context, serviceID, categoryID uint) error {
	res := r.db.WithContext(ctx).
		Where("service_id = ? AND category_id = ?", serviceID, categoryID).
		Delete(&models.ServiceCategory{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("ServiceCategory", fmt.Sprintf("%d/%d", serviceID, categoryID))
	}
	return nil
}

func (r *serviceCategoryRepository) ListByService(ctx context.Context, serviceID uint) ([]models.ServiceCategory, error) {
	links := make([]models.ServiceCategory, 0)
	if err := readDB(r.db).WithContext(ctx).
		Preload("Category").
		Where("service_id = ?", serviceID).
		Order("category_id").
		Find(&links).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return links, nil
}
