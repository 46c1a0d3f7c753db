package repository

import (
	"context"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// ContactFilter narrows the inquiry list
type ContactFilter struct {
	ListParams
	InquiryType string
	IsResolved  *bool
}

// ContactOrdering lists the sortable inquiry fields
var ContactOrdering = map[string]string{
	"created_at":   "created_at",
	"inquiry_type": "inquiry_type",
}

// Create creates a new inquiry
func (r *ContactRepository) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// List returns one page of inquiries
func (r *ContactRepository) List(ctx context.Context, f ContactFilter, order string) ([]models.ContactInquiry, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactInquiry{})
	if f.InquiryType != "" {
		q = q.Where("inquiry_type = ?", f.InquiryType)
	}
	if f.IsResolved != nil {
		q = q.Where("is_resolved = ?", *f.IsResolved)
	}
	q = search(q, f.Search, "name", "email", "subject")

	inquiries := []models.ContactInquiry{}
	count, err := paginate(q, f.Page, order, &inquiries)
	return inquiries, count, err
}

// FindByID finds an inquiry by ID
func (r *ContactRepository) FindByID(ctx context.Context, id uint) (*models.ContactInquiry, error) {
	var inquiry models.ContactInquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &inquiry, nil
}

// Save persists every field of inquiry
func (r *ContactRepository) Save(ctx context.Context, inquiry *models.ContactInquiry) error {
	return r.db.WithContext(ctx).Save(inquiry).Error
}
