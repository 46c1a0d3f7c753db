package repository

import (
	"context"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// DoctorFilter narrows the doctor list
type DoctorFilter struct {
	ListParams
	DepartmentID   *uint
	IsAvailable    *bool
	Specialization string
}

// DoctorOrdering lists the sortable doctor fields
var DoctorOrdering = map[string]string{
	"first_name":          "first_name",
	"last_name":           "last_name",
	"years_of_experience": "years_of_experience",
	"consultation_fee":    "consultation_fee",
	"created_at":          "created_at",
}

// ListActive returns one page of active doctors
func (r *DoctorRepository) ListActive(ctx context.Context, f DoctorFilter, order string) ([]models.Doctor, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("is_active = ?", true)
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.Specialization != "" {
		q = q.Where("LOWER(specialization) = LOWER(?)", f.Specialization)
	}
	q = search(q, f.Search, "first_name", "last_name", "specialization")

	doctors := []models.Doctor{}
	count, err := paginate(q.Preload("Department"), f.Page, order, &doctors)
	return doctors, count, err
}

// FindByID finds a doctor by ID with department and schedules
func (r *DoctorRepository) FindByID(ctx context.Context, id uint, activeOnly bool) (*models.Doctor, error) {
	var doctor models.Doctor
	q := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC, start_time ASC")
		})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&doctor, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

// Create creates a new doctor
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return duplicate(r.db.WithContext(ctx).Omit("Department", "Schedules").Create(doctor).Error)
}

// Save persists every field of doctor
func (r *DoctorRepository) Save(ctx context.Context, doctor *models.Doctor) error {
	return duplicate(r.db.WithContext(ctx).Omit("Department", "Schedules").Save(doctor).Error)
}

// Delete removes a doctor and their schedules
func (r *DoctorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&models.DoctorSchedule{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Doctor{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListSchedules returns a doctor's weekly schedule ordered by weekday
func (r *DoctorRepository) ListSchedules(ctx context.Context, doctorID uint) ([]models.DoctorSchedule, error) {
	schedules := []models.DoctorSchedule{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// UpsertSchedules writes one row per weekday, updating the first existing row
// for that day or inserting a new one
func (r *DoctorRepository) UpsertSchedules(ctx context.Context, doctorID uint, schedules []models.DoctorSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range schedules {
			s := &schedules[i]
			s.DoctorID = doctorID

			var existing models.DoctorSchedule
			err := tx.Where("doctor_id = ? AND day_of_week = ?", doctorID, s.DayOfWeek).
				Order("id ASC").
				First(&existing).Error
			switch {
			case err == nil:
				s.ID = existing.ID
				if err := tx.Save(s).Error; err != nil {
					return err
				}
			case notFound(err) == ErrNotFound:
				if err := tx.Create(s).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}
