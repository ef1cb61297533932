package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules configures the job manager.
type Schedules struct {
	SessionSweep       string
	SessionIdleTTL     time.Duration
	BoxCatalogRefresh  string
	BoxCatalogPageSize int
	BoxCatalogTimeout  time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionSweepJob      *SessionSweepJob
	boxCatalogRefreshJob *BoxCatalogRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sweeper SessionSweeper,
	refresher BoxCatalogRefresher,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionSweepJob: NewSessionSweepJob(sweeper, schedules.SessionIdleTTL, schedules.SessionSweep, logger),
		boxCatalogRefreshJob: NewBoxCatalogRefreshJob(
			refresher, schedules.BoxCatalogPageSize, schedules.BoxCatalogTimeout, schedules.BoxCatalogRefresh, logger,
		),
	}
}

// BoxCatalogRefresh exposes the refresh job so the catalog can be loaded
// once before the server accepts requests.
func (jm *JobManager) BoxCatalogRefresh() *BoxCatalogRefreshJob {
	return jm.boxCatalogRefreshJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.boxCatalogRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start box catalog refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.boxCatalogRefreshJob.Stop()
	jm.sessionSweepJob.Stop()
}
