package models

import "time"

// Department represents a clinical department (e.g., Ophthalmology)
type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image"`
	IsActive    bool      `gorm:"index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Services []Service `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"-"`
	Doctors  []Doctor  `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName specifies the table name for Department model
func (Department) TableName() string {
	return "departments"
}

// DepartmentWithCounts is the list/detail row with active service count
type DepartmentWithCounts struct {
	Department
	ServicesCount int64 `json:"services_count"`
}

// Service represents a medical service offered by a department
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	DepartmentID uint      `gorm:"not null;index" json:"department"`
	Image        string    `gorm:"size:255" json:"image"`
	PriceRange   string    `gorm:"size:100" json:"price_range"`
	IsActive     bool      `gorm:"index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}

// DepartmentName returns the preloaded department name, if any
func (s Service) DepartmentName() string {
	if s.Department == nil {
		return ""
	}
	return s.Department.Name
}
