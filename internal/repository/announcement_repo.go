package repository

import (
	"context"
	"time"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepo(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

const announcementOrder = "is_urgent DESC, start_date DESC"

// visibleAt keeps active announcements whose window contains now
func visibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", true, now, now)
	}
}

// ListVisible returns one page of announcements visible at now
func (r *AnnouncementRepository) ListVisible(ctx context.Context, params ListParams, now time.Time) ([]models.Announcement, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Announcement{}).Scopes(visibleAt(now))
	q = search(q, params.Search, "title", "content")

	items := []models.Announcement{}
	count, err := paginate(q, params.Page, announcementOrder, &items)
	return items, count, err
}

// CountVisible counts announcements visible at now
func (r *AnnouncementRepository) CountVisible(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Announcement{}).Scopes(visibleAt(now)).Count(&count).Error
	return count, err
}

// FindByID finds an announcement by ID
func (r *AnnouncementRepository) FindByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var item models.Announcement
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, item *models.Announcement) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save persists every field of item
func (r *AnnouncementRepository) Save(ctx context.Context, item *models.Announcement) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
