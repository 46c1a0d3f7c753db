package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Appointment status values
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// ActiveStatuses hold a time slot
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// Appointment represents the appointments table
type Appointment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PatientName     string         `gorm:"size:200;not null" json:"patient_name"`
	PatientEmail    string         `gorm:"size:254;not null;index" json:"patient_email"`
	PatientPhone    string         `gorm:"size:17;not null" json:"patient_phone"`
	PatientAge      int            `gorm:"not null" json:"patient_age"`
	PatientGender   string         `gorm:"size:1;not null" json:"patient_gender"`
	DoctorID        *uint          `gorm:"index" json:"doctor"`
	AppointmentDate datatypes.Date `gorm:"not null;index" json:"appointment_date"`
	AppointmentTime datatypes.Time `gorm:"not null" json:"appointment_time"`
	Reason          string         `gorm:"type:text;not null" json:"reason"`
	Notes           string         `gorm:"type:text" json:"notes"`
	Status          string         `gorm:"size:20;not null;index" json:"status"`
	IsEmergency     bool           `json:"is_emergency"`
	ActiveSlot      *string        `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeSave keeps the slot key in step with the status
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.IsActive() {
		key := SlotKey(a.DoctorID, a.AppointmentDate, a.AppointmentTime)
		a.ActiveSlot = &key
	} else {
		a.ActiveSlot = nil
	}
	return nil
}

// IsActive reports whether the appointment still occupies its slot
func (a Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransition reports whether status may move from the current one to next
func (a Appointment) CanTransition(next string) bool {
	for _, s := range statusTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// SlotKey builds "<doctor id or 0>|<YYYY-MM-DD>|<HH:MM:SS>"
func SlotKey(doctorID *uint, date datatypes.Date, clock datatypes.Time) string {
	var id uint
	if doctorID != nil {
		id = *doctorID
	}
	return fmt.Sprintf("%d|%s|%s", id, FormatDate(date), FormatClock(clock))
}

// FormatDate renders a date column as YYYY-MM-DD
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

// FormatClock renders a time-of-day column as HH:MM:SS
func FormatClock(t datatypes.Time) string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// IsValidStatus reports whether s is a known appointment status
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
