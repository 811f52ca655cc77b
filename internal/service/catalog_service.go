package service

import (
	"context"
	"strings"

	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/validation"
)

const maxTitleLen = 120

// CatalogService covers the browsable marketplace catalog: services (gigs),
// categories and the links between them.
type CatalogService struct {
	serviceRepo  repository.ServiceRepository
	categoryRepo repository.CategoryRepository
	linkRepo     repository.ServiceCategoryRepository
	userRepo     repository.UserRepository
}

type CreateServiceInput struct {
	FreelancerID     uint
	Title            string
	Description      string
	BasePrice        float64
	Currency         string
	DeliveryTimeDays int
}

type UpdateServiceInput struct {
	ServiceID        uint
	Title            *string
	Description      *string
	BasePrice        *float64
	Currency         *string
	DeliveryTimeDays *int
	IsActive         *bool
}

type CreateCategoryInput struct {
	Name string
	Slug string
}

type UpdateCategoryInput struct {
	CategoryID uint
	Name       *string
	Slug       *string
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	categoryRepo repository.CategoryRepository,
	linkRepo repository.ServiceCategoryRepository,
	userRepo repository.UserRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		linkRepo:     linkRepo,
		userRepo:     userRepo,
	}
}

func (s *CatalogService) CreateService(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	user, err := s.userRepo.GetByID(ctx, in.FreelancerID)
	if err != nil {
		return nil, err
	}
	if !user.IsFreelancer {
		return nil, models.NewValidationError("User is not a freelancer")
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 120 characters)")
	}
	if in.BasePrice <= 0 {
		return nil, models.NewValidationError("Base price must be positive")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if err := validation.ValidateCurrency(in.Currency); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.DeliveryTimeDays == 0 {
		in.DeliveryTimeDays = 1
	}
	if in.DeliveryTimeDays < 1 {
		return nil, models.NewValidationError("Delivery time must be at least 1 day")
	}

	svc := &models.Service{
		FreelancerID:     in.FreelancerID,
		Title:            in.Title,
		Description:      in.Description,
		BasePrice:        in.BasePrice,
		Currency:         in.Currency,
		DeliveryTimeDays: in.DeliveryTimeDays,
		IsActive:         true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, filter repository.ServiceFilter, limit, offset int) ([]models.Service, error) {
	return s.serviceRepo.List(ctx, filter, limit, offset)
}

func (s *CatalogService) UpdateService(ctx context.Context, in UpdateServiceInput) (*models.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 120 characters)")
		}
		svc.Title = *in.Title
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.BasePrice != nil {
		if *in.BasePrice <= 0 {
			return nil, models.NewValidationError("Base price must be positive")
		}
		svc.BasePrice = *in.BasePrice
	}
	if in.Currency != nil {
		if err := validation.ValidateCurrency(*in.Currency); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		svc.Currency = *in.Currency
	}
	if in.DeliveryTimeDays != nil {
		if *in.DeliveryTimeDays < 1 {
			return nil, models.NewValidationError("Delivery time must be at least 1 day")
		}
		svc.DeliveryTimeDays = *in.DeliveryTimeDays
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uint) error {
	return s.serviceRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Slug == "" {
		in.Slug = slugify(in.Name)
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category := &models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", slug)
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, limit, offset int) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name is required")
		}
		category.Name = *in.Name
	}
	if in.Slug != nil {
		if err := validation.ValidateSlug(*in.Slug); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		category.Slug = *in.Slug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *CatalogService) LinkServiceCategory(ctx context.Context, serviceID, categoryID uint) (*models.ServiceCategory, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	link := &models.ServiceCategory{ServiceID: serviceID, CategoryID: categoryID}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *CatalogService) UnlinkServiceCategory(ctx context.Context, serviceID, categoryID uint) error {
	return s.linkRepo.Delete(ctx, serviceID, categoryID)
}

func (s *CatalogService) ListServiceCategories(ctx context.Context, serviceID uint) ([]models.ServiceCategory, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.linkRepo.ListByService(ctx, serviceID)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
