package repository

import (
	"context"
	"errors"

	"offerhub/internal/cache"
	"offerhub/internal/models"

	"gorm.io/gorm"
)

// ServiceRepository defines persistence operations for services (gigs).
type ServiceRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ServiceFilter, limit, offset int) ([]models.Service, error)
}

// ServiceFilter narrows List results. Zero/nil fields are ignored.
type ServiceFilter struct {
	FreelancerID uint
	IsActive     *bool
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository returns a new ServiceRepository implementation.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	key := cache.ServiceKey(id)

	err := cache.Aside(ctx, key, &svc, cache.ServiceTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).First(&svc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Service", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) Create(ctx context.Context, svc *models.Service) error {
	if err := r.db.WithContext(ctx).Create(svc).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewNotFoundError("User", svc.FreelancerID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *models.Service) error {
	if err := r.db.WithContext(ctx).Save(svc).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateService(ctx, svc.ID)
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Service", id)
	}
	cache.InvalidateService(ctx, id)
	return nil
}

func (r *serviceRepository) List(ctx context.Context, filter ServiceFilter, limit, offset int) ([]models.Service, error) {
	services := make([]models.Service, 0)
	q := readDB(r.db).WithContext(ctx)
	if filter.FreelancerID != 0 {
		q = q.Where("freelancer_id = ?", filter.FreelancerID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if err := q.Limit(limit).Offset(offset).Order("id").Find(&services).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return services, nil
}
