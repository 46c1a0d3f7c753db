package repository

import (
	"context"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// GalleryFilter narrows the gallery list
type GalleryFilter struct {
	ListParams
	Category   string
	IsFeatured *bool
}

const galleryOrder = "display_order ASC, created_at DESC"

// List returns one page of gallery items in display order
func (r *GalleryRepository) List(ctx context.Context, f GalleryFilter) ([]models.Gallery, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Gallery{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	q = search(q, f.Search, "title", "description")

	items := []models.Gallery{}
	count, err := paginate(q, f.Page, galleryOrder, &items)
	return items, count, err
}

// FindByID finds a gallery item by ID
func (r *GalleryRepository) FindByID(ctx context.Context, id uint) (*models.Gallery, error) {
	var item models.Gallery
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// Create creates a new gallery item
func (r *GalleryRepository) Create(ctx context.Context, item *models.Gallery) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Delete removes a gallery item
func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Gallery{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
