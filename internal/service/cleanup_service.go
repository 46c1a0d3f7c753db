package service

import (
	"context"
	"fmt"
	"time"

	"hospital-website-backend/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CleanupService purges expired and revoked sessions on a cron schedule
type CleanupService struct {
	userRepo *repository.UserRepository
	log      *logrus.Logger
	cron     *cron.Cron
	now      func() time.Time
}

func NewCleanupService(userRepo *repository.UserRepository, log *logrus.Logger) *CleanupService {
	return &CleanupService{
		userRepo: userRepo,
		log:      log,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start registers the purge job and starts the scheduler
func (s *CleanupService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.Run(context.Background()) }); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	s.cron.Start()

	s.log.WithField("schedule", schedule).Info("Session cleanup scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job
func (s *CleanupService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Session cleanup scheduler stopped")
}

// Run deletes stale sessions once
func (s *CleanupService) Run(ctx context.Context) int64 {
	removed, err := s.userRepo.DeleteStaleSessions(ctx, s.now())
	if err != nil {
		s.log.WithError(err).Error("Error purging stale sessions")
		return 0
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Info("Purged stale sessions")
	}
	return removed
}
