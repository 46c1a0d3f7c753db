package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
	auditor        *security.Auditor
}

func NewDepartmentService(departmentRepo *repository.DepartmentRepository, auditor *security.Auditor) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		auditor:        auditor,
	}
}

// List returns one page of active departments
func (s *DepartmentService) List(ctx context.Context, params repository.ListParams) ([]models.DepartmentWithCounts, int64, error) {
	order := utils.OrderClause(params.Ordering, repository.DepartmentOrdering, "departments.name ASC")
	return s.departmentRepo.ListActive(ctx, params, order)
}

// Get returns an active department with its service count
func (s *DepartmentService) Get(ctx context.Context, id uint) (*models.DepartmentWithCounts, error) {
	return s.departmentRepo.FindWithCounts(ctx, id, true)
}

// Create creates a new department (staff only)
func (s *DepartmentService) Create(ctx context.Context, dept *models.Department, caller Caller) (*models.DepartmentWithCounts, error) {
	if err := s.departmentRepo.Create(ctx, dept); err != nil {
		return nil, s.writeError(err, "create")
	}

	recordWrite(ctx, s.auditor, caller, "department_create", fmt.Sprintf("Created department: %s", dept.Name))
	return s.departmentRepo.FindWithCounts(ctx, dept.ID, false)
}

// Update replaces an existing department's fields (staff only)
func (s *DepartmentService) Update(ctx context.Context, dept *models.Department, caller Caller) (*models.DepartmentWithCounts, error) {
	// Verify department exists
	existing, err := s.departmentRepo.FindByID(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	dept.CreatedAt = existing.CreatedAt

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, s.writeError(err, "update")
	}

	recordWrite(ctx, s.auditor, caller, "department_update", fmt.Sprintf("Updated department: %s", dept.Name))
	return s.departmentRepo.FindWithCounts(ctx, dept.ID, false)
}

// Delete removes a department and its services (staff only)
func (s *DepartmentService) Delete(ctx context.Context, id uint, caller Caller) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDepartmentInUse) {
			return err
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "department_delete", fmt.Sprintf("Deleted department ID: %d", id))
	return nil
}

func (s *DepartmentService) writeError(err error, op string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fieldError("name", "Department with this name already exists.")
	}
	return fmt.Errorf("failed to %s department: %w", op, err)
}
