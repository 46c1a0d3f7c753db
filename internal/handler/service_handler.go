package handler

import (
	"net/http"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the medical services catalog
type ServiceHandler struct {
	catalogService *service.CatalogService
}

func NewServiceHandler(catalogService *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
	}
}

type ServiceRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Department  uint   `json:"department" binding:"required"`
	Image       string `json:"image" binding:"max=255"`
	PriceRange  string `json:"price_range" binding:"max=100"`
	IsActive    *bool  `json:"is_active"`
}

func (r ServiceRequest) model(id uint) *models.Service {
	return &models.Service{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		DepartmentID: r.Department,
		Image:        r.Image,
		PriceRange:   r.PriceRange,
		IsActive:     r.IsActive == nil || *r.IsActive,
	}
}

// ListServices lists active services, optionally for one department
func (h *ServiceHandler) ListServices(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	departmentID, ok := queryUint(c, "department")
	if !ok {
		return
	}

	items, count, err := h.catalogService.List(c.Request.Context(), repository.ServiceFilter{
		ListParams:   params,
		DepartmentID: departmentID,
	})
	respondPage(c, params.Page, count, newServiceResponses(items), err)
}

// GetService retrieves an active service
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newServiceResponse(*svc))
}

// CreateService creates a service (staff only)
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalogService.Create(c.Request.Context(), req.model(0), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, newServiceResponse(*svc))
}

// UpdateService replaces a service (staff only)
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), req.model(id), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newServiceResponse(*svc))
}

// DeleteService removes a service (staff only)
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id, caller(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
