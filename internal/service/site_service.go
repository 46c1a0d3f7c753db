package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
)

const defaultHours = "24/7"

// SiteService manages hospital info, gallery and announcements
type SiteService struct {
	infoRepo         *repository.HospitalInfoRepository
	galleryRepo      *repository.GalleryRepository
	announcementRepo *repository.AnnouncementRepository
	auditor          *security.Auditor
	now              func() time.Time
}

func NewSiteService(
	infoRepo *repository.HospitalInfoRepository,
	galleryRepo *repository.GalleryRepository,
	announcementRepo *repository.AnnouncementRepository,
	auditor *security.Auditor,
) *SiteService {
	return &SiteService{
		infoRepo:         infoRepo,
		galleryRepo:      galleryRepo,
		announcementRepo: announcementRepo,
		auditor:          auditor,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the service clock (tests)
func (s *SiteService) WithClock(now func() time.Time) *SiteService {
	s.now = now
	return s
}

// HospitalInfo returns the singleton hospital record
func (s *SiteService) HospitalInfo(ctx context.Context) (*models.HospitalInfo, error) {
	return s.infoRepo.First(ctx)
}

// UpdateHospitalInfo writes the singleton, creating it on first use
func (s *SiteService) UpdateHospitalInfo(ctx context.Context, info *models.HospitalInfo, caller Caller) (*models.HospitalInfo, error) {
	existing, err := s.infoRepo.First(ctx)
	switch {
	case err == nil:
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		info.ID = 0
	default:
		return nil, fmt.Errorf("failed to load hospital info: %w", err)
	}
	if info.OperatingHours == "" {
		info.OperatingHours = defaultHours
	}
	if info.EmergencyHours == "" {
		info.EmergencyHours = defaultHours
	}

	if err := s.infoRepo.Save(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to save hospital info: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "hospital_info_update", fmt.Sprintf("Updated hospital info: %s", info.Name))
	return info, nil
}

// Gallery returns one page of gallery items
func (s *SiteService) Gallery(ctx context.Context, f repository.GalleryFilter) ([]models.Gallery, int64, error) {
	return s.galleryRepo.List(ctx, f)
}

// AddGalleryItem creates a gallery item (staff only)
func (s *SiteService) AddGalleryItem(ctx context.Context, item *models.Gallery, caller Caller) (*models.Gallery, error) {
	if item.Category == "" {
		item.Category = models.GalleryFacility
	}
	if err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "gallery_create", fmt.Sprintf("Added gallery item: %s", item.Title))
	return item, nil
}

// DeleteGalleryItem removes a gallery item (staff only)
func (s *SiteService) DeleteGalleryItem(ctx context.Context, id uint, caller Caller) error {
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordWrite(ctx, s.auditor, caller, "gallery_delete", fmt.Sprintf("Deleted gallery item ID: %d", id))
	return nil
}

// Announcements returns one page of currently visible announcements
func (s *SiteService) Announcements(ctx context.Context, params repository.ListParams) ([]models.Announcement, int64, error) {
	return s.announcementRepo.ListVisible(ctx, params, s.now())
}

// Announcement returns a visible announcement; hidden ones are not found
func (s *SiteService) Announcement(ctx context.Context, id uint) (*models.Announcement, error) {
	item, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsVisibleAt(s.now()) {
		return nil, ErrNotFound
	}
	return item, nil
}

// CreateAnnouncement creates an announcement (staff only)
func (s *SiteService) CreateAnnouncement(ctx context.Context, item *models.Announcement, caller Caller) (*models.Announcement, error) {
	if err := validateWindow(item); err != nil {
		return nil, err
	}
	if item.StartDate.IsZero() {
		item.StartDate = s.now()
	}
	if err := s.announcementRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "announcement_create", fmt.Sprintf("Created announcement: %s", item.Title))
	return item, nil
}

// UpdateAnnouncement replaces an announcement's fields (staff only)
func (s *SiteService) UpdateAnnouncement(ctx context.Context, item *models.Announcement, caller Caller) (*models.Announcement, error) {
	existing, err := s.announcementRepo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if item.StartDate.IsZero() {
		item.StartDate = existing.StartDate
	}
	if err := validateWindow(item); err != nil {
		return nil, err
	}
	item.CreatedAt = existing.CreatedAt

	if err := s.announcementRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "announcement_update", fmt.Sprintf("Updated announcement: %s", item.Title))
	return item, nil
}

// DeleteAnnouncement removes an announcement (staff only)
func (s *SiteService) DeleteAnnouncement(ctx context.Context, id uint, caller Caller) error {
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	recordWrite(ctx, s.auditor, caller, "announcement_delete", fmt.Sprintf("Deleted announcement ID: %d", id))
	return nil
}

func validateWindow(item *models.Announcement) error {
	if item.EndDate != nil && !item.StartDate.IsZero() && item.EndDate.Before(item.StartDate) {
		return fieldError("end_date", "End date must be after start date.")
	}
	return nil
}
