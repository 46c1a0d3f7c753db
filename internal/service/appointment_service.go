package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	doctorRepo      *repository.DoctorRepository
	auditor         *security.Auditor
	location        *time.Location
	now             func() time.Time
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	doctorRepo *repository.DoctorRepository,
	auditor *security.Auditor,
	location *time.Location,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditor:         auditor,
		location:        location,
		now:             time.Now,
	}
}

// WithClock replaces the service clock (tests)
func (s *AppointmentService) WithClock(now func() time.Time) *AppointmentService {
	s.now = now
	return s
}

// CreateAppointmentInput is a public booking request
type CreateAppointmentInput struct {
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	PatientAge      int
	PatientGender   string
	DoctorID        *uint
	AppointmentDate string
	AppointmentTime string
	Reason          string
	IsEmergency     bool
}

// Create books a pending appointment after the date, doctor and slot checks
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	date, err := utils.ParseDate(in.AppointmentDate)
	if err != nil {
		return nil, fieldError("appointment_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	clock, err := utils.ParseClock(in.AppointmentTime)
	if err != nil {
		return nil, fieldError("appointment_time", "Time has wrong format. Use hh:mm[:ss].")
	}

	today := utils.Today(s.now(), s.location)
	if time.Time(date).Before(time.Time(today)) {
		return nil, ErrPastDate
	}

	if in.DoctorID != nil {
		doctor, err := s.doctorRepo.FindByID(ctx, *in.DoctorID, false)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fieldError("doctor", "Selected doctor does not exist.")
			}
			return nil, fmt.Errorf("failed to load doctor: %w", err)
		}
		if !doctor.CanTakeAppointments() {
			return nil, fieldError("doctor", "Selected doctor is not available for appointments.")
		}
	}

	appt := &models.Appointment{
		PatientName:     in.PatientName,
		PatientEmail:    in.PatientEmail,
		PatientPhone:    in.PatientPhone,
		PatientAge:      in.PatientAge,
		PatientGender:   in.PatientGender,
		DoctorID:        in.DoctorID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Reason:          in.Reason,
		Status:          models.StatusPending,
		IsEmergency:     in.IsEmergency,
	}

	if err := s.appointmentRepo.CreateIfSlotFree(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// List returns one page of appointments for staff
func (s *AppointmentService) List(ctx context.Context, f repository.AppointmentFilter) ([]models.Appointment, int64, error) {
	order := utils.OrderClause(f.Ordering, repository.AppointmentOrdering, "appointment_date DESC, appointment_time DESC")
	return s.appointmentRepo.List(ctx, f, order)
}

// Get returns one appointment
func (s *AppointmentService) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.appointmentRepo.FindByID(ctx, id)
}

// UpdateStatusInput is a staff status change, optionally with notes
type UpdateStatusInput struct {
	Status string
	Notes  *string
}

// UpdateStatus moves an appointment along its lifecycle
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, in UpdateStatusInput, actorID uint, clientIP string) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.IsValidStatus(in.Status) {
		return nil, fieldError("status", fmt.Sprintf("\"%s\" is not a valid choice.", in.Status))
	}
	previous := appt.Status
	if in.Status != previous && !appt.CanTransition(in.Status) {
		return nil, ErrInvalidTransition
	}

	appt.Status = in.Status
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	if err := s.appointmentRepo.Save(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if previous != appt.Status {
		s.auditor.Record(ctx, security.Event{
			Action:   security.ActionStatusChange,
			ClientIP: clientIP,
			UserID:   &actorID,
			Details:  fmt.Sprintf("Appointment %d: %s -> %s", appt.ID, previous, appt.Status),
		})
	}
	return appt, nil
}
