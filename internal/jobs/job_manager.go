package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	rateRefreshJob *RateRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	rateSource ports.RateSource,
	rateHolder *services.RateHolder,
	rateRefreshSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		rateRefreshJob: NewRateRefreshJob(rateSource, rateHolder, rateRefreshSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.rateRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start rate refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.rateRefreshJob.Stop()
}
