package testutil

import (
	"testing"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateDepartment inserts an active department
func CreateDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name, Description: name + " care", IsActive: true}
	require.NoError(t, db.Create(dept).Error)
	return dept
}

// CreateDoctor inserts an active, available doctor in dept
func CreateDoctor(t *testing.T, db *gorm.DB, dept *models.Department, license string) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{
		FirstName:            "Meera",
		LastName:             "Iyer",
		MedicalLicense:       license,
		Specialization:       "Retina",
		DepartmentID:         dept.ID,
		ConsultationDuration: 30,
		IsAvailable:          true,
		IsActive:             true,
	}
	require.NoError(t, db.Omit("Department", "Schedules").Create(doctor).Error)
	return doctor
}

// CreateUser inserts an active user with a bcrypt password
func CreateUser(t *testing.T, db *gorm.DB, username, password string, staff bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
