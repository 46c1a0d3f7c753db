package models

import "time"

// HospitalInfo represents the hospital_info table
// The first row is treated as the singleton
type HospitalInfo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Tagline        string    `gorm:"size:300" json:"tagline"`
	Description    string    `gorm:"type:text" json:"description"`
	Address        string    `gorm:"type:text" json:"address"`
	PhonePrimary   string    `gorm:"size:17" json:"phone_primary"`
	PhoneSecondary string    `gorm:"size:17" json:"phone_secondary"`
	EmailPrimary   string    `gorm:"size:254" json:"email_primary"`
	EmailSecondary string    `gorm:"size:254" json:"email_secondary"`
	EmergencyPhone string    `gorm:"size:17" json:"emergency_phone"`
	OperatingHours string    `gorm:"size:200" json:"operating_hours"`
	EmergencyHours string    `gorm:"size:200" json:"emergency_hours"`
	Website        string    `gorm:"size:255" json:"website"`
	FacebookURL    string    `gorm:"size:255" json:"facebook"`
	TwitterURL     string    `gorm:"size:255" json:"twitter"`
	InstagramURL   string    `gorm:"size:255" json:"instagram"`
	LinkedinURL    string    `gorm:"size:255" json:"linkedin"`
	YoutubeURL     string    `gorm:"size:255" json:"youtube"`
	Latitude       *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude      *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	Logo           string    `gorm:"size:255" json:"logo"`
	HeroImage      string    `gorm:"size:255" json:"hero_image"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for HospitalInfo model
func (HospitalInfo) TableName() string {
	return "hospital_info"
}
