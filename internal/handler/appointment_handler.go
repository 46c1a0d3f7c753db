package handler

import (
	"strings"

	"hospital-website-backend/internal/middleware"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/service"
	"hospital-website-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

type CreateAppointmentRequest struct {
	PatientName     string `json:"patient_name" binding:"required,max=200"`
	PatientEmail    string `json:"patient_email" binding:"required,email,max=254"`
	PatientPhone    string `json:"patient_phone" binding:"required,max=17"`
	PatientAge      int    `json:"patient_age" binding:"required,gte=1,lte=150"`
	PatientGender   string `json:"patient_gender" binding:"required,oneof=M F O"`
	Doctor          *uint  `json:"doctor"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	IsEmergency     bool   `json:"is_emergency"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// CreateAppointment books a pending appointment
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appt, err := h.appointmentService.Create(c.Request.Context(), service.CreateAppointmentInput{
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		PatientAge:      req.PatientAge,
		PatientGender:   req.PatientGender,
		DoctorID:        req.Doctor,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		IsEmergency:     req.IsEmergency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, newAppointmentResponse(*appt))
}

// ListAppointments lists appointments for staff
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	doctorID, ok := queryUint(c, "doctor")
	if !ok {
		return
	}

	filter := repository.AppointmentFilter{
		ListParams:  params,
		Status:      strings.TrimSpace(c.Query("status")),
		IsEmergency: queryBool(c, "is_emergency"),
		DoctorID:    doctorID,
	}
	if raw := c.Query("appointment_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			utils.ValidationErrorResponse(c, map[string]string{"appointment_date": "Enter a valid date."})
			return
		}
		filter.AppointmentDate = &date
	}

	items, count, err := h.appointmentService.List(c.Request.Context(), filter)
	respondPage(c, params.Page, count, newAppointmentResponses(items), err)
}

// GetAppointment retrieves one appointment for staff
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	appt, err := h.appointmentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newAppointmentResponse(*appt))
}

// UpdateStatus moves an appointment to a new status (staff only)
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	appt, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, service.UpdateStatusInput{
		Status: req.Status,
		Notes:  req.Notes,
	}, middleware.CurrentUser(c).ID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newAppointmentResponse(*appt))
}
