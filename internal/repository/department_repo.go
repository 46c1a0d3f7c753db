package repository

import (
	"context"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/pkg/utils"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// DepartmentOrdering lists the sortable department fields
var DepartmentOrdering = map[string]string{
	"name":       "departments.name",
	"created_at": "departments.created_at",
}

const servicesCountSelect = "departments.*, (SELECT COUNT(*) FROM services WHERE services.department_id = departments.id AND services.is_active = ?) AS services_count"

// ListActive returns one page of active departments with their active service counts
func (r *DepartmentRepository) ListActive(ctx context.Context, params ListParams, order string) ([]models.DepartmentWithCounts, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Department{}).Where("departments.is_active = ?", true)
	q = search(q, params.Search, "departments.name", "departments.description")

	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := utils.CheckPage(params.Page, count); err != nil {
		return nil, count, err
	}

	departments := []models.DepartmentWithCounts{}
	err := q.Select(servicesCountSelect, true).
		Order(order).
		Offset(utils.Offset(params.Page)).
		Limit(utils.PageSize).
		Find(&departments).Error
	return departments, count, err
}

// FindWithCounts finds a department by ID with its active service count
func (r *DepartmentRepository) FindWithCounts(ctx context.Context, id uint, activeOnly bool) (*models.DepartmentWithCounts, error) {
	var dept models.DepartmentWithCounts
	q := r.db.WithContext(ctx).Model(&models.Department{}).
		Select(servicesCountSelect, true).
		Where("departments.id = ?", id)
	if activeOnly {
		q = q.Where("departments.is_active = ?", true)
	}
	if err := q.Take(&dept).Error; err != nil {
		return nil, notFound(err)
	}
	return &dept, nil
}

// FindByID finds a department by ID
func (r *DepartmentRepository) FindByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &dept, nil
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	return duplicate(r.db.WithContext(ctx).Create(dept).Error)
}

// Save persists every field of dept
func (r *DepartmentRepository) Save(ctx context.Context, dept *models.Department) error {
	return duplicate(r.db.WithContext(ctx).Save(dept).Error)
}

// Delete removes a department and its services in one transaction
// Departments that still have doctors are refused with ErrDepartmentInUse
func (r *DepartmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dept models.Department
		if err := tx.First(&dept, id).Error; err != nil {
			return notFound(err)
		}

		var doctors int64
		if err := tx.Model(&models.Doctor{}).Where("department_id = ?", id).Count(&doctors).Error; err != nil {
			return err
		}
		if doctors > 0 {
			return ErrDepartmentInUse
		}

		if err := tx.Where("department_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dept).Error
	})
}

// CountActive counts active departments
func (r *DepartmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
