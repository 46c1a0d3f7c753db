package service

import (
	"context"
	"fmt"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/pkg/utils"
)

// DashboardStats are the staff overview counters
type DashboardStats struct {
	TotalDepartments    int64 `json:"total_departments"`
	TotalServices       int64 `json:"total_services"`
	PendingAppointments int64 `json:"pending_appointments"`
	TodayAppointments   int64 `json:"today_appointments"`
	ActiveAnnouncements int64 `json:"active_announcements"`
}

type DashboardService struct {
	departmentRepo   *repository.DepartmentRepository
	serviceRepo      *repository.ServiceRepository
	appointmentRepo  *repository.AppointmentRepository
	announcementRepo *repository.AnnouncementRepository
	location         *time.Location
	now              func() time.Time
}

func NewDashboardService(
	departmentRepo *repository.DepartmentRepository,
	serviceRepo *repository.ServiceRepository,
	appointmentRepo *repository.AppointmentRepository,
	announcementRepo *repository.AnnouncementRepository,
	location *time.Location,
) *DashboardService {
	return &DashboardService{
		departmentRepo:   departmentRepo,
		serviceRepo:      serviceRepo,
		appointmentRepo:  appointmentRepo,
		announcementRepo: announcementRepo,
		location:         location,
		now:              time.Now,
	}
}

// WithClock replaces the service clock (tests)
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Stats collects the dashboard counters
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error
	now := s.now()

	if stats.TotalDepartments, err = s.departmentRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	if stats.TotalServices, err = s.serviceRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	if stats.PendingAppointments, err = s.appointmentRepo.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending appointments: %w", err)
	}
	if stats.TodayAppointments, err = s.appointmentRepo.CountOnDate(ctx, utils.Today(now, s.location)); err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	if stats.ActiveAnnouncements, err = s.announcementRepo.CountVisible(ctx, now.UTC()); err != nil {
		return nil, fmt.Errorf("failed to count announcements: %w", err)
	}

	return &stats, nil
}
