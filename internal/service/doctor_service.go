package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

type DoctorService struct {
	doctorRepo     *repository.DoctorRepository
	departmentRepo *repository.DepartmentRepository
	auditor        *security.Auditor
}

func NewDoctorService(
	doctorRepo *repository.DoctorRepository,
	departmentRepo *repository.DepartmentRepository,
	auditor *security.Auditor,
) *DoctorService {
	return &DoctorService{
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
		auditor:        auditor,
	}
}

// List returns one page of active doctors
func (s *DoctorService) List(ctx context.Context, f repository.DoctorFilter) ([]models.Doctor, int64, error) {
	order := utils.OrderClause(f.Ordering, repository.DoctorOrdering, "last_name ASC, first_name ASC")
	return s.doctorRepo.ListActive(ctx, f, order)
}

// Get returns an active doctor with schedules
func (s *DoctorService) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	return s.doctorRepo.FindByID(ctx, id, true)
}

// Create creates a new doctor (staff only)
func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor, caller Caller) (*models.Doctor, error) {
	if err := s.checkDepartment(ctx, doctor.DepartmentID); err != nil {
		return nil, err
	}
	if doctor.ConsultationDuration == 0 {
		doctor.ConsultationDuration = 30
	}
	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, s.writeError(err, "create")
	}

	recordWrite(ctx, s.auditor, caller, "doctor_create", fmt.Sprintf("Created doctor: %s (license: %s)", doctor.FullName(), doctor.MedicalLicense))
	return s.doctorRepo.FindByID(ctx, doctor.ID, false)
}

// Update replaces an existing doctor's fields (staff only)
func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor, caller Caller) (*models.Doctor, error) {
	existing, err := s.doctorRepo.FindByID(ctx, doctor.ID, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, doctor.DepartmentID); err != nil {
		return nil, err
	}
	if doctor.ConsultationDuration == 0 {
		doctor.ConsultationDuration = existing.ConsultationDuration
	}
	doctor.CreatedAt = existing.CreatedAt

	if err := s.doctorRepo.Save(ctx, doctor); err != nil {
		return nil, s.writeError(err, "update")
	}

	recordWrite(ctx, s.auditor, caller, "doctor_update", fmt.Sprintf("Updated doctor: %s", doctor.FullName()))
	return s.doctorRepo.FindByID(ctx, doctor.ID, false)
}

// Delete removes a doctor and their schedules (staff only)
func (s *DoctorService) Delete(ctx context.Context, id uint, caller Caller) error {
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "doctor_delete", fmt.Sprintf("Deleted doctor ID: %d", id))
	return nil
}

// Schedules returns an active doctor's weekly schedule
func (s *DoctorService) Schedules(ctx context.Context, doctorID uint) ([]models.DoctorSchedule, error) {
	if _, err := s.doctorRepo.FindByID(ctx, doctorID, true); err != nil {
		return nil, err
	}
	return s.doctorRepo.ListSchedules(ctx, doctorID)
}

// SetSchedules upserts one schedule row per weekday (staff only)
func (s *DoctorService) SetSchedules(ctx context.Context, doctorID uint, schedules []models.DoctorSchedule, caller Caller) ([]models.DoctorSchedule, error) {
	if _, err := s.doctorRepo.FindByID(ctx, doctorID, false); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(schedules))
	for i, sch := range schedules {
		field := fmt.Sprintf("schedules[%d]", i)
		if sch.DayOfWeek < 0 || sch.DayOfWeek > 6 {
			return nil, fieldError(field+".day_of_week", "Day of week must be between 0 (Monday) and 6 (Sunday).")
		}
		if seen[sch.DayOfWeek] {
			return nil, fieldError(field+".day_of_week", "Each weekday may appear only once.")
		}
		seen[sch.DayOfWeek] = true
		if sch.EndTime <= sch.StartTime {
			return nil, fieldError(field+".end_time", "End time must be after start time.")
		}
	}

	if err := s.doctorRepo.UpsertSchedules(ctx, doctorID, schedules); err != nil {
		return nil, fmt.Errorf("failed to save schedules: %w", err)
	}

	recordWrite(ctx, s.auditor, caller, "doctor_schedule_update", fmt.Sprintf("Updated %d schedule days for doctor ID: %d", len(schedules), doctorID))
	return s.doctorRepo.ListSchedules(ctx, doctorID)
}

func (s *DoctorService) checkDepartment(ctx context.Context, id uint) error {
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("department", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
		return fmt.Errorf("failed to load department: %w", err)
	}
	return nil
}

func (s *DoctorService) writeError(err error, op string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fieldError("medical_license", "Doctor with this medical license already exists.")
	}
	return fmt.Errorf("failed to %s doctor: %w", op, err)
}
