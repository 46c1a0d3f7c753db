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

// CatalogService manages the medical services each department offers
type CatalogService struct {
	serviceRepo    *repository.ServiceRepository
	departmentRepo *repository.DepartmentRepository
	auditor        *security.Auditor
}

func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	departmentRepo *repository.DepartmentRepository,
	auditor *security.Auditor,
) *CatalogService {
	return &CatalogService{
		serviceRepo:    serviceRepo,
		departmentRepo: departmentRepo,
		auditor:        auditor,
	}
}

// List returns one page of active services
func (s *CatalogService) List(ctx context.Context, f repository.ServiceFilter) ([]models.Service, int64, error) {
	order := utils.OrderClause(f.Ordering, repository.ServiceOrdering, "name ASC")
	return s.serviceRepo.ListActive(ctx, f, order)
}

// Get returns an active service
func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	return s.serviceRepo.FindByID(ctx, id, true)
}

// Create creates a new service (staff only)
func (s *CatalogService) Create(ctx context.Context, svc *models.Service, caller Caller) (*models.Service, error) {
	if err := s.checkDepartment(ctx, svc.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "service_create", fmt.Sprintf("Created service: %s", svc.Name))
	return s.serviceRepo.FindByID(ctx, svc.ID, false)
}

// Update replaces an existing service's fields (staff only)
func (s *CatalogService) Update(ctx context.Context, svc *models.Service, caller Caller) (*models.Service, error) {
	existing, err := s.serviceRepo.FindByID(ctx, svc.ID, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, svc.DepartmentID); err != nil {
		return nil, err
	}
	svc.CreatedAt = existing.CreatedAt

	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "service_update", fmt.Sprintf("Updated service: %s", svc.Name))
	return s.serviceRepo.FindByID(ctx, svc.ID, false)
}

// Delete removes a service (staff only)
func (s *CatalogService) Delete(ctx context.Context, id uint, caller Caller) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordWrite(ctx, s.auditor, caller, "service_delete", fmt.Sprintf("Deleted service ID: %d", id))
	return nil
}

func (s *CatalogService) checkDepartment(ctx context.Context, id uint) error {
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("department", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
		return fmt.Errorf("failed to load department: %w", err)
	}
	return nil
}
