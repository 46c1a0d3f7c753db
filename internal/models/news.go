package models

import (
	"time"

	"gorm.io/gorm"
)

// News represents the news table
type News struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Slug          string     `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"size:300" json:"excerpt"`
	FeaturedImage string     `gorm:"size:255" json:"featured_image"`
	Author        string     `gorm:"size:100" json:"author"`
	IsPublished   bool       `gorm:"index" json:"is_published"`
	IsFeatured    bool       `gorm:"index" json:"is_featured"`
	PublishedDate *time.Time `gorm:"index" json:"published_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for News model
func (News) TableName() string {
	return "news"
}

// BeforeSave stamps the publish time the first time an article goes live
// Slug derivation needs uniqueness checks and lives in the repository
func (n *News) BeforeSave(tx *gorm.DB) error {
	if n.IsPublished && n.PublishedDate == nil {
		now := tx.NowFunc()
		n.PublishedDate = &now
	}
	return nil
}
