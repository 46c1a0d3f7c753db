package handler

import (
	"net/http"
	"strings"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

type DoctorRequest struct {
	FirstName            string  `json:"first_name" binding:"required,max=100"`
	LastName             string  `json:"last_name" binding:"required,max=100"`
	Email                string  `json:"email" binding:"omitempty,email,max=254"`
	Phone                string  `json:"phone" binding:"max=17"`
	Gender               string  `json:"gender" binding:"omitempty,oneof=M F O"`
	DateOfBirth          string  `json:"date_of_birth"`
	MedicalLicense       string  `json:"medical_license" binding:"required,max=50"`
	Specialization       string  `json:"specialization" binding:"required,max=200"`
	Department           uint    `json:"department" binding:"required"`
	YearsOfExperience    uint    `json:"years_of_experience"`
	Qualifications       string  `json:"qualifications"`
	Bio                  string  `json:"bio"`
	Image                string  `json:"image" binding:"max=255"`
	ConsultationFee      float64 `json:"consultation_fee" binding:"gte=0"`
	ConsultationDuration int     `json:"consultation_duration" binding:"gte=0,lte=480"`
	IsAvailable          *bool   `json:"is_available"`
	IsActive             *bool   `json:"is_active"`
}

func (r DoctorRequest) model(id uint) (*models.Doctor, map[string]string) {
	doctor := &models.Doctor{
		ID:                   id,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		Email:                r.Email,
		Phone:                r.Phone,
		Gender:               r.Gender,
		MedicalLicense:       r.MedicalLicense,
		Specialization:       r.Specialization,
		DepartmentID:         r.Department,
		YearsOfExperience:    r.YearsOfExperience,
		Qualifications:       r.Qualifications,
		Bio:                  r.Bio,
		Image:                r.Image,
		ConsultationFee:      r.ConsultationFee,
		ConsultationDuration: r.ConsultationDuration,
		IsAvailable:          r.IsAvailable == nil || *r.IsAvailable,
		IsActive:             r.IsActive == nil || *r.IsActive,
	}
	if strings.TrimSpace(r.DateOfBirth) != "" {
		dob, err := utils.ParseDate(r.DateOfBirth)
		if err != nil {
			return nil, map[string]string{"date_of_birth": "Date has wrong format. Use YYYY-MM-DD."}
		}
		doctor.DateOfBirth = &dob
	}
	return doctor, nil
}

type ScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"gte=0,lte=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

type SchedulesRequest struct {
	Schedules []ScheduleRequest `json:"schedules" binding:"required,dive"`
}

// ListDoctors lists active doctors with department, availability and
// specialization filters
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	departmentID, ok := queryUint(c, "department")
	if !ok {
		return
	}

	items, count, err := h.doctorService.List(c.Request.Context(), repository.DoctorFilter{
		ListParams:     params,
		DepartmentID:   departmentID,
		IsAvailable:    queryBool(c, "is_available"),
		Specialization: strings.TrimSpace(c.Query("specialization")),
	})
	respondPage(c, params.Page, count, newDoctorResponses(items), err)
}

// GetDoctor retrieves an active doctor with schedules
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newDoctorResponse(*doctor))
}

// CreateDoctor creates a doctor (staff only)
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}
	doctor, fields := req.model(0)
	if fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	created, err := h.doctorService.Create(c.Request.Context(), doctor, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, newDoctorResponse(*created))
}

// UpdateDoctor replaces a doctor (staff only)
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}
	doctor, fields := req.model(id)
	if fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	updated, err := h.doctorService.Update(c.Request.Context(), doctor, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newDoctorResponse(*updated))
}

// DeleteDoctor removes a doctor (staff only)
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorService.Delete(c.Request.Context(), id, caller(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSchedules returns an active doctor's weekly schedule
func (h *DoctorHandler) GetSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	schedules, err := h.doctorService.Schedules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newScheduleResponses(schedules))
}

// SetSchedules upserts the weekly schedule (staff only)
func (h *DoctorHandler) SetSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SchedulesRequest
	if !bindJSON(c, &req) {
		return
	}

	schedules := make([]models.DoctorSchedule, 0, len(req.Schedules))
	for _, item := range req.Schedules {
		start, err := utils.ParseClock(item.StartTime)
		if err != nil {
			utils.ValidationErrorResponse(c, map[string]string{"start_time": "Time has wrong format. Use hh:mm[:ss]."})
			return
		}
		end, err := utils.ParseClock(item.EndTime)
		if err != nil {
			utils.ValidationErrorResponse(c, map[string]string{"end_time": "Time has wrong format. Use hh:mm[:ss]."})
			return
		}
		schedules = append(schedules, models.DoctorSchedule{
			DoctorID:  id,
			DayOfWeek: item.DayOfWeek,
			StartTime: start,
			EndTime:   end,
			IsActive:  item.IsActive == nil || *item.IsActive,
		})
	}

	saved, err := h.doctorService.SetSchedules(c.Request.Context(), id, schedules, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newScheduleResponses(saved))
}
