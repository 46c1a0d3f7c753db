package repository

import (
	"context"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ServiceFilter narrows the service list
type ServiceFilter struct {
	ListParams
	DepartmentID *uint
}

// ServiceOrdering lists the sortable service fields
var ServiceOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// ListActive returns one page of active services
func (r *ServiceRepository) ListActive(ctx context.Context, f ServiceFilter, order string) ([]models.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{}).Where("is_active = ?", true)
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	q = search(q, f.Search, "name", "description")

	services := []models.Service{}
	count, err := paginate(q.Preload("Department"), f.Page, order, &services)
	return services, count, err
}

// FindByID finds a service by ID with its department
func (r *ServiceRepository) FindByID(ctx context.Context, id uint, activeOnly bool) (*models.Service, error) {
	var svc models.Service
	q := r.db.WithContext(ctx).Preload("Department")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&svc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

// Create creates a new service
func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Omit("Department").Create(svc).Error
}

// Save persists every field of svc
func (r *ServiceRepository) Save(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Omit("Department").Save(svc).Error
}

// Delete removes a service
func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive counts active services
func (r *ServiceRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
