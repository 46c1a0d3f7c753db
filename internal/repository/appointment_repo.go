package repository

import (
	"context"
	"errors"

	"hospital-website-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// AppointmentFilter narrows the staff appointment list
type AppointmentFilter struct {
	ListParams
	Status          string
	IsEmergency     *bool
	AppointmentDate *datatypes.Date
	DoctorID        *uint
}

// AppointmentOrdering lists the sortable appointment fields
var AppointmentOrdering = map[string]string{
	"appointment_date": "appointment_date",
	"appointment_time": "appointment_time",
	"created_at":       "created_at",
}

// CreateIfSlotFree inserts the appointment unless an active one already holds
// the slot. Without a doctor any active booking at that date and time
// conflicts; with a doctor only that doctor's bookings do.
func (r *AppointmentRepository) CreateIfSlotFree(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Appointment{}).
			Where("appointment_date = ? AND appointment_time = ? AND status IN ?",
				appt.AppointmentDate, appt.AppointmentTime, models.ActiveStatuses)
		if appt.DoctorID != nil {
			q = q.Where("doctor_id = ?", *appt.DoctorID)
		}

		var taken int64
		if err := q.Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrSlotTaken
		}

		if err := tx.Omit("Doctor").Create(appt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

// List returns one page of appointments
func (r *AppointmentRepository) List(ctx context.Context, f AppointmentFilter, order string) ([]models.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.IsEmergency != nil {
		q = q.Where("is_emergency = ?", *f.IsEmergency)
	}
	if f.AppointmentDate != nil {
		q = q.Where("appointment_date = ?", *f.AppointmentDate)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	q = search(q, f.Search, "patient_name", "patient_email", "reason")

	appointments := []models.Appointment{}
	count, err := paginate(q.Preload("Doctor"), f.Page, order, &appointments)
	return appointments, count, err
}

// FindByID finds an appointment by ID with its doctor
func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).Preload("Doctor").First(&appt, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &appt, nil
}

// Save persists every field of appointment; the slot key follows the status
func (r *AppointmentRepository) Save(ctx context.Context, appt *models.Appointment) error {
	err := r.db.WithContext(ctx).Omit("Doctor").Save(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

// CountByStatus counts appointments in a status
func (r *AppointmentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountOnDate counts appointments booked for a date
func (r *AppointmentRepository) CountOnDate(ctx context.Context, date datatypes.Date) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("appointment_date = ?", date).Count(&count).Error
	return count, err
}
