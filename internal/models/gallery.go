package models

import "time"

// Gallery categories
const (
	GalleryFacility  = "facility"
	GalleryEquipment = "equipment"
	GalleryStaff     = "staff"
	GalleryEvents    = "events"
	GalleryAwards    = "awards"
)

// Gallery represents the gallery table
type Gallery struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Image        string    `gorm:"size:255;not null" json:"image"`
	Category     string    `gorm:"size:20;not null;index" json:"category"`
	IsFeatured   bool      `gorm:"index" json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Gallery model
func (Gallery) TableName() string {
	return "gallery"
}
