package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Gender choices shared by doctors and patients
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Doctor represents a consultant attached to a department
type Doctor struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	FirstName            string          `gorm:"size:100;not null" json:"first_name"`
	LastName             string          `gorm:"size:100;not null" json:"last_name"`
	Email                string          `gorm:"size:254" json:"email"`
	Phone                string          `gorm:"size:17" json:"phone"`
	Gender               string          `gorm:"size:1" json:"gender"`
	DateOfBirth          *datatypes.Date `json:"date_of_birth"`
	MedicalLicense       string          `gorm:"size:50;not null;uniqueIndex" json:"medical_license"`
	Specialization       string          `gorm:"size:200;index" json:"specialization"`
	DepartmentID         uint            `gorm:"not null;index" json:"department"`
	YearsOfExperience    uint            `json:"years_of_experience"`
	Qualifications       string          `gorm:"type:text" json:"qualifications"`
	Bio                  string          `gorm:"type:text" json:"bio"`
	Image                string          `gorm:"size:255" json:"image"`
	ConsultationFee      float64         `gorm:"type:decimal(10,2)" json:"consultation_fee"`
	ConsultationDuration int             `json:"consultation_duration"`
	IsAvailable          bool            `gorm:"index" json:"is_available"`
	IsActive             bool            `gorm:"index" json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Relationships
	Department *Department      `gorm:"foreignKey:DepartmentID" json:"-"`
	Schedules  []DoctorSchedule `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}

// FullName is "Dr. First Last"
func (d Doctor) FullName() string {
	return strings.TrimSpace("Dr. " + strings.TrimSpace(d.FirstName+" "+d.LastName))
}

// CanTakeAppointments reports whether the doctor may be booked
func (d Doctor) CanTakeAppointments() bool {
	return d.IsActive && d.IsAvailable
}

// DoctorSchedule is one weekly working window; DayOfWeek 0=Monday..6=Sunday
type DoctorSchedule struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DoctorID  uint           `gorm:"not null;index" json:"doctor"`
	DayOfWeek int            `gorm:"not null" json:"day_of_week"`
	StartTime datatypes.Time `json:"start_time"`
	EndTime   datatypes.Time `json:"end_time"`
	IsActive  bool           `json:"is_active"`
}

// TableName specifies the table name for DoctorSchedule model
func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the weekday label for DayOfWeek
func (s DoctorSchedule) DayName() string {
	if s.DayOfWeek < 0 || s.DayOfWeek >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[s.DayOfWeek]
}

// ScheduleDay converts a time.Weekday (Sunday=0) to the Monday=0 convention
func ScheduleDay(w time.Weekday) int {
	return (int(w) + 6) % 7
}
