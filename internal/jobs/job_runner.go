package jobs

import (
	"database/sql"

	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/service"
)

// JobRunner coordinates the periodic sweeps. Both sweeps are idempotent
// batch operations; running them twice in a row is harmless.
type JobRunner struct {
	db        *sql.DB
	rateSvc   service.RateService
	clientSvc service.ClientService
}

func NewJobRunner(db *sql.DB, rateSvc service.RateService, clientSvc service.ClientService) *JobRunner {
	return &JobRunner{
		db:        db,
		rateSvc:   rateSvc,
		clientSvc: clientSvc,
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueLoans()
	jr.RefreshClientStates()
}
