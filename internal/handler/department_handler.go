package handler

import (
	"net/http"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"max=255"`
	IsActive    *bool  `json:"is_active"`
}

func (r DepartmentRequest) model(id uint) *models.Department {
	return &models.Department{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive == nil || *r.IsActive,
	}
}

// ListDepartments lists active departments with their service counts
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	items, count, err := h.departmentService.List(c.Request.Context(), params)
	respondPage(c, params.Page, count, items, err)
}

// GetDepartment retrieves an active department
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	dept, err := h.departmentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dept)
}

// CreateDepartment creates a department (staff only)
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.Create(c.Request.Context(), req.model(0), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, dept)
}

// UpdateDepartment replaces a department (staff only)
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.Update(c.Request.Context(), req.model(id), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dept)
}

// DeleteDepartment removes a department (staff only)
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), id, caller(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
