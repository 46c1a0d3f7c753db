// Package handler holds the gin handlers of the public and staff API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hospital-website-backend/internal/middleware"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates service errors into HTTP responses
// Unknown errors are attached to the context for the request logger
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, utils.ErrInvalidPage):
		utils.ErrorResponse(c, http.StatusNotFound, "Invalid page")
	case errors.Is(err, service.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, service.ErrSlotTaken):
		utils.ErrorResponse(c, http.StatusBadRequest, "This time slot is already booked.")
	case errors.Is(err, service.ErrPastDate):
		utils.ErrorResponse(c, http.StatusBadRequest, "Appointment date cannot be in the past.")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account is disabled")
	case errors.Is(err, service.ErrLockedOut):
		utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
	case errors.Is(err, service.ErrAdminExists):
		utils.ErrorResponse(c, http.StatusBadRequest, "Admin user already exists")
	case errors.Is(err, service.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusBadRequest, "This status change is not allowed.")
	case errors.Is(err, service.ErrDepartmentInUse):
		utils.ErrorResponse(c, http.StatusBadRequest, "Department still has doctors assigned.")
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes the body into req and writes the 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := utils.ValidationFields(err); ok {
			utils.ValidationErrorResponse(c, fields)
		} else {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

// parseID reads a numeric path parameter; malformed ids are not found
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return uint(id), true
}

// listParams reads page, search and ordering
func listParams(c *gin.Context) (repository.ListParams, bool) {
	page, err := utils.ParsePage(c.Query("page"))
	if err != nil {
		respondError(c, err)
		return repository.ListParams{}, false
	}
	return repository.ListParams{
		Page:     page,
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
	}, true
}

// respondPage writes a paginated list, or the error that produced it
func respondPage(c *gin.Context, page int, count int64, results interface{}, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, utils.NewPageResult(c, page, count, results))
}

// queryBool reads an optional true/false filter; anything else is ignored
func queryBool(c *gin.Context, key string) *bool {
	switch strings.ToLower(c.Query(key)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// queryUint reads an optional numeric filter
func queryUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.ValidationErrorResponse(c, map[string]string{key: "Select a valid choice."})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// caller identifies the staff member making a write
func caller(c *gin.Context) service.Caller {
	var id uint
	if user := middleware.CurrentUser(c); user != nil {
		id = user.ID
	}
	return service.Caller{UserID: id, ClientIP: c.ClientIP()}
}
