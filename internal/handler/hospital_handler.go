package handler

import (
	"net/http"
	"strings"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HospitalHandler serves hospital info, the gallery and announcements
type HospitalHandler struct {
	siteService *service.SiteService
}

func NewHospitalHandler(siteService *service.SiteService) *HospitalHandler {
	return &HospitalHandler{
		siteService: siteService,
	}
}

type HospitalInfoRequest struct {
	Name           string   `json:"name" binding:"required,max=200"`
	Tagline        string   `json:"tagline" binding:"max=300"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	PhonePrimary   string   `json:"phone_primary" binding:"max=17"`
	PhoneSecondary string   `json:"phone_secondary" binding:"max=17"`
	EmailPrimary   string   `json:"email_primary" binding:"omitempty,email,max=254"`
	EmailSecondary string   `json:"email_secondary" binding:"omitempty,email,max=254"`
	EmergencyPhone string   `json:"emergency_phone" binding:"max=17"`
	OperatingHours string   `json:"operating_hours" binding:"max=200"`
	EmergencyHours string   `json:"emergency_hours" binding:"max=200"`
	Website        string   `json:"website" binding:"omitempty,url,max=255"`
	FacebookURL    string   `json:"facebook" binding:"omitempty,url,max=255"`
	TwitterURL     string   `json:"twitter" binding:"omitempty,url,max=255"`
	InstagramURL   string   `json:"instagram" binding:"omitempty,url,max=255"`
	LinkedinURL    string   `json:"linkedin" binding:"omitempty,url,max=255"`
	YoutubeURL     string   `json:"youtube" binding:"omitempty,url,max=255"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Logo           string   `json:"logo" binding:"max=255"`
	HeroImage      string   `json:"hero_image" binding:"max=255"`
}

type GalleryRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	Image        string `json:"image" binding:"required,max=255"`
	Category     string `json:"category" binding:"omitempty,oneof=facility equipment staff events awards"`
	IsFeatured   bool   `json:"is_featured"`
	DisplayOrder int    `json:"display_order"`
}

type AnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,max=200"`
	Content   string     `json:"content" binding:"required"`
	IsActive  *bool      `json:"is_active"`
	IsUrgent  bool       `json:"is_urgent"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (r AnnouncementRequest) model(id uint) *models.Announcement {
	item := &models.Announcement{
		ID:       id,
		Title:    r.Title,
		Content:  r.Content,
		IsActive: r.IsActive == nil || *r.IsActive,
		IsUrgent: r.IsUrgent,
		EndDate:  r.EndDate,
	}
	if r.StartDate != nil {
		item.StartDate = r.StartDate.UTC()
	}
	if item.EndDate != nil {
		end := item.EndDate.UTC()
		item.EndDate = &end
	}
	return item
}

// GetHospitalInfo returns the hospital's contact and branding details
func (h *HospitalHandler) GetHospitalInfo(c *gin.Context) {
	info, err := h.siteService.HospitalInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, info)
}

// UpdateHospitalInfo replaces the hospital details (staff only)
func (h *HospitalHandler) UpdateHospitalInfo(c *gin.Context) {
	var req HospitalInfoRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.siteService.UpdateHospitalInfo(c.Request.Context(), &models.HospitalInfo{
		Name:           req.Name,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Address:        req.Address,
		PhonePrimary:   req.PhonePrimary,
		PhoneSecondary: req.PhoneSecondary,
		EmailPrimary:   req.EmailPrimary,
		EmailSecondary: req.EmailSecondary,
		EmergencyPhone: req.EmergencyPhone,
		OperatingHours: req.OperatingHours,
		EmergencyHours: req.EmergencyHours,
		Website:        req.Website,
		FacebookURL:    req.FacebookURL,
		TwitterURL:     req.TwitterURL,
		InstagramURL:   req.InstagramURL,
		LinkedinURL:    req.LinkedinURL,
		YoutubeURL:     req.YoutubeURL,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Logo:           req.Logo,
		HeroImage:      req.HeroImage,
	}, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, info)
}

// ListGallery lists gallery items in display order
func (h *HospitalHandler) ListGallery(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}

	items, count, err := h.siteService.Gallery(c.Request.Context(), repository.GalleryFilter{
		ListParams: params,
		Category:   strings.TrimSpace(c.Query("category")),
		IsFeatured: queryBool(c, "is_featured"),
	})
	respondPage(c, params.Page, count, items, err)
}

// CreateGalleryItem adds a gallery item (staff only)
func (h *HospitalHandler) CreateGalleryItem(c *gin.Context) {
	var req GalleryRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.siteService.AddGalleryItem(c.Request.Context(), &models.Gallery{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		Category:     req.Category,
		IsFeatured:   req.IsFeatured,
		DisplayOrder: req.DisplayOrder,
	}, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// DeleteGalleryItem removes a gallery item (staff only)
func (h *HospitalHandler) DeleteGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.siteService.DeleteGalleryItem(c.Request.Context(), id, caller(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAnnouncements lists the announcements visible now
func (h *HospitalHandler) ListAnnouncements(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	items, count, err := h.siteService.Announcements(c.Request.Context(), params)
	respondPage(c, params.Page, count, items, err)
}

// GetAnnouncement retrieves a visible announcement
func (h *HospitalHandler) GetAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.siteService.Announcement(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// CreateAnnouncement creates an announcement (staff only)
func (h *HospitalHandler) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.siteService.CreateAnnouncement(c.Request.Context(), req.model(0), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// UpdateAnnouncement replaces an announcement (staff only)
func (h *HospitalHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.siteService.UpdateAnnouncement(c.Request.Context(), req.model(id), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// DeleteAnnouncement removes an announcement (staff only)
func (h *HospitalHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.siteService.DeleteAnnouncement(c.Request.Context(), id, caller(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
