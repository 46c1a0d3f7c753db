package models

import "time"

// Announcement represents the announcements table
type Announcement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	IsActive  bool       `gorm:"index" json:"is_active"`
	IsUrgent  bool       `json:"is_urgent"`
	StartDate time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Announcement model
func (Announcement) TableName() string {
	return "announcements"
}

// IsVisibleAt reports whether the announcement is shown at now
func (a Announcement) IsVisibleAt(now time.Time) bool {
	if !a.IsActive || a.StartDate.After(now) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(now)
}
