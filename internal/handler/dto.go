package handler

import (
	"time"

	"hospital-website-backend/internal/models"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

// ServiceResponse adds the department name to a medical service
type ServiceResponse struct {
	models.Service
	DepartmentName string `json:"department_name"`
}

func newServiceResponse(s models.Service) ServiceResponse {
	return ServiceResponse{Service: s, DepartmentName: s.DepartmentName()}
}

func newServiceResponses(items []models.Service) []ServiceResponse {
	out := make([]ServiceResponse, len(items))
	for i, s := range items {
		out[i] = newServiceResponse(s)
	}
	return out
}

// ScheduleResponse is one weekly working window
type ScheduleResponse struct {
	ID        uint   `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

func newScheduleResponses(items []models.DoctorSchedule) []ScheduleResponse {
	out := make([]ScheduleResponse, len(items))
	for i, s := range items {
		out[i] = ScheduleResponse{
			ID:        s.ID,
			DayOfWeek: s.DayOfWeek,
			DayName:   s.DayName(),
			StartTime: models.FormatClock(s.StartTime),
			EndTime:   models.FormatClock(s.EndTime),
			IsActive:  s.IsActive,
		}
	}
	return out
}

// DoctorResponse is a doctor with derived name fields and schedules
type DoctorResponse struct {
	ID                   uint               `json:"id"`
	FirstName            string             `json:"first_name"`
	LastName             string             `json:"last_name"`
	FullName             string             `json:"full_name"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	Gender               string             `json:"gender"`
	DateOfBirth          *string            `json:"date_of_birth"`
	MedicalLicense       string             `json:"medical_license"`
	Specialization       string             `json:"specialization"`
	Department           uint               `json:"department"`
	DepartmentName       string             `json:"department_name"`
	YearsOfExperience    uint               `json:"years_of_experience"`
	Qualifications       string             `json:"qualifications"`
	Bio                  string             `json:"bio"`
	Image                string             `json:"image"`
	ConsultationFee      float64            `json:"consultation_fee"`
	ConsultationDuration int                `json:"consultation_duration"`
	IsAvailable          bool               `json:"is_available"`
	IsActive             bool               `json:"is_active"`
	Schedules            []ScheduleResponse `json:"schedules,omitempty"`
}

func newDoctorResponse(d models.Doctor) DoctorResponse {
	resp := DoctorResponse{
		ID:                   d.ID,
		FirstName:            d.FirstName,
		LastName:             d.LastName,
		FullName:             d.FullName(),
		Email:                d.Email,
		Phone:                d.Phone,
		Gender:               d.Gender,
		MedicalLicense:       d.MedicalLicense,
		Specialization:       d.Specialization,
		Department:           d.DepartmentID,
		YearsOfExperience:    d.YearsOfExperience,
		Qualifications:       d.Qualifications,
		Bio:                  d.Bio,
		Image:                d.Image,
		ConsultationFee:      d.ConsultationFee,
		ConsultationDuration: d.ConsultationDuration,
		IsAvailable:          d.IsAvailable,
		IsActive:             d.IsActive,
	}
	if d.DateOfBirth != nil {
		dob := models.FormatDate(*d.DateOfBirth)
		resp.DateOfBirth = &dob
	}
	if d.Department != nil {
		resp.DepartmentName = d.Department.Name
	}
	if len(d.Schedules) > 0 {
		resp.Schedules = newScheduleResponses(d.Schedules)
	}
	return resp
}

func newDoctorResponses(items []models.Doctor) []DoctorResponse {
	out := make([]DoctorResponse, len(items))
	for i, d := range items {
		out[i] = newDoctorResponse(d)
	}
	return out
}

// AppointmentResponse renders date and time as plain strings
type AppointmentResponse struct {
	ID              uint      `json:"id"`
	PatientName     string    `json:"patient_name"`
	PatientEmail    string    `json:"patient_email"`
	PatientPhone    string    `json:"patient_phone"`
	PatientAge      int       `json:"patient_age"`
	PatientGender   string    `json:"patient_gender"`
	Doctor          *uint     `json:"doctor"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	IsEmergency     bool      `json:"is_emergency"`
	CreatedAt       time.Time `json:"created_at"`
}

func newAppointmentResponse(a models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		PatientName:     a.PatientName,
		PatientEmail:    a.PatientEmail,
		PatientPhone:    a.PatientPhone,
		PatientAge:      a.PatientAge,
		PatientGender:   a.PatientGender,
		Doctor:          a.DoctorID,
		AppointmentDate: models.FormatDate(a.AppointmentDate),
		AppointmentTime: models.FormatClock(a.AppointmentTime),
		Reason:          a.Reason,
		Notes:           a.Notes,
		Status:          a.Status,
		IsEmergency:     a.IsEmergency,
		CreatedAt:       a.CreatedAt,
	}
}

func newAppointmentResponses(items []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(items))
	for i, a := range items {
		out[i] = newAppointmentResponse(a)
	}
	return out
}

// NewsSummary is the list view of an article, without the body
type NewsSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Author        string     `json:"author"`
	PublishedDate *time.Time `json:"published_date"`
	IsFeatured    bool       `json:"is_featured"`
}

func newNewsSummaries(items []models.News) []NewsSummary {
	out := make([]NewsSummary, len(items))
	for i, n := range items {
		out[i] = NewsSummary{
			ID:            n.ID,
			Title:         n.Title,
			Slug:          n.Slug,
			Excerpt:       n.Excerpt,
			FeaturedImage: n.FeaturedImage,
			Author:        n.Author,
			PublishedDate: n.PublishedDate,
			IsFeatured:    n.IsFeatured,
		}
	}
	return out
}
