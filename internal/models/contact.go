package models

import "time"

// Inquiry types
const (
	InquiryGeneral     = "general"
	InquiryAppointment = "appointment"
	InquiryEmergency   = "emergency"
	InquiryFeedback    = "feedback"
	InquiryComplaint   = "complaint"
)

// ContactInquiry represents the contact_inquiries table
type ContactInquiry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Email       string    `gorm:"size:254;not null;index" json:"email"`
	Phone       string    `gorm:"size:17" json:"phone"`
	InquiryType string    `gorm:"size:20;not null;index" json:"inquiry_type"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsResolved  bool      `gorm:"index" json:"is_resolved"`
	Response    string    `gorm:"type:text" json:"response"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ContactInquiry model
func (ContactInquiry) TableName() string {
	return "contact_inquiries"
}
