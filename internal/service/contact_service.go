package service

import (
	"context"
	"fmt"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

type ContactService struct {
	contactRepo *repository.ContactRepository
	auditor     *security.Auditor
}

func NewContactService(contactRepo *repository.ContactRepository, auditor *security.Auditor) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		auditor:     auditor,
	}
}

// Create stores a public inquiry
func (s *ContactService) Create(ctx context.Context, inquiry *models.ContactInquiry) (*models.ContactInquiry, error) {
	if inquiry.InquiryType == "" {
		inquiry.InquiryType = models.InquiryGeneral
	}
	inquiry.IsResolved = false
	inquiry.Response = ""

	if err := s.contactRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inquiry, nil
}

// List returns one page of inquiries for staff
func (s *ContactService) List(ctx context.Context, f repository.ContactFilter) ([]models.ContactInquiry, int64, error) {
	order := utils.OrderClause(f.Ordering, repository.ContactOrdering, "created_at DESC")
	return s.contactRepo.List(ctx, f, order)
}

// Get returns one inquiry
func (s *ContactService) Get(ctx context.Context, id uint) (*models.ContactInquiry, error) {
	return s.contactRepo.FindByID(ctx, id)
}

// RespondInput is a staff follow-up; nil leaves a field unchanged
type RespondInput struct {
	IsResolved *bool
	Response   *string
}

// Respond records a staff response or resolution
func (s *ContactService) Respond(ctx context.Context, id uint, in RespondInput, caller Caller) (*models.ContactInquiry, error) {
	inquiry, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.IsResolved != nil {
		inquiry.IsResolved = *in.IsResolved
	}
	if in.Response != nil {
		inquiry.Response = *in.Response
	}

	if err := s.contactRepo.Save(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "contact_update", fmt.Sprintf("Updated inquiry ID: %d (resolved: %t)", inquiry.ID, inquiry.IsResolved))
	return inquiry, nil
}
