package repository

import (
	"context"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type HospitalInfoRepository struct {
	db *gorm.DB
}

func NewHospitalInfoRepo(db *gorm.DB) *HospitalInfoRepository {
	return &HospitalInfoRepository{db: db}
}

// First returns the singleton row (lowest ID)
func (r *HospitalInfoRepository) First(ctx context.Context) (*models.HospitalInfo, error) {
	var info models.HospitalInfo
	if err := r.db.WithContext(ctx).Order("id ASC").First(&info).Error; err != nil {
		return nil, notFound(err)
	}
	return &info, nil
}

// Save inserts or updates the row
func (r *HospitalInfoRepository) Save(ctx context.Context, info *models.HospitalInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}
