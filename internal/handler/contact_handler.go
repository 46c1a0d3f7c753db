package handler

import (
	"strings"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Phone       string `json:"phone" binding:"max=17"`
	InquiryType string `json:"inquiry_type" binding:"omitempty,oneof=general appointment emergency feedback complaint"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Message     string `json:"message" binding:"required"`
}

type RespondRequest struct {
	IsResolved *bool   `json:"is_resolved"`
	Response   *string `json:"response"`
}

// CreateInquiry stores a public contact message
func (h *ContactHandler) CreateInquiry(c *gin.Context) {
	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	inquiry, err := h.contactService.Create(c.Request.Context(), &models.ContactInquiry{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		InquiryType: req.InquiryType,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, inquiry)
}

// ListInquiries lists inquiries for staff
func (h *ContactHandler) ListInquiries(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}

	items, count, err := h.contactService.List(c.Request.Context(), repository.ContactFilter{
		ListParams:  params,
		InquiryType: strings.TrimSpace(c.Query("inquiry_type")),
		IsResolved:  queryBool(c, "is_resolved"),
	})
	respondPage(c, params.Page, count, items, err)
}

// GetInquiry retrieves one inquiry for staff
func (h *ContactHandler) GetInquiry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	inquiry, err := h.contactService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// RespondInquiry records a staff response or resolution
func (h *ContactHandler) RespondInquiry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RespondRequest
	if !bindJSON(c, &req) {
		return
	}

	inquiry, err := h.contactService.Respond(c.Request.Context(), id, service.RespondInput{
		IsResolved: req.IsResolved,
		Response:   req.Response,
	}, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}
