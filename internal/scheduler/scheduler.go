package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"toolrent-backend/internal/config"
	"toolrent-backend/internal/jobs"
	"toolrent-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs(cfg)
	return s
}

func (s *Scheduler) registerJobs(cfg config.SchedulerConfig) {
	_, err := s.cron.AddFunc(cfg.MarkOverdueLoans, s.jobs.MarkOverdueLoans)
	if err != nil {
		logger.Error("Failed to register MarkOverdueLoans job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.RefreshClientStates, s.jobs.RefreshClientStates)
	if err != nil {
		logger.Error("Failed to register RefreshClientStates job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
