package jobs

import (
	"fmt"
	"log/slog"

	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	consolidationJob *ConsolidationJob
	balanceJob       *BalanceJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	passHandler ConsolidationPassHandler,
	settings ports.SettingsRepository,
	router *services.HubRouter,
	provider ports.TariffProvider,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		consolidationJob: NewConsolidationJob(passHandler, settings, router, logger),
		balanceJob:       NewBalanceJob(provider, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.consolidationJob.Start(); err != nil {
		return fmt.Errorf("failed to start consolidation job: %w", err)
	}

	if err := jm.balanceJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.consolidationJob.Stop()
		return fmt.Errorf("failed to start balance job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.balanceJob.Stop()
	jm.consolidationJob.Stop()
}
