// Package jobs provides scheduled background tasks for the consolidation
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the scheduler.
//
// # Available Jobs
//
// 1. ConsolidationJob - Ticks every minute and runs a consolidation pass
// for each hub scope whose cadence interval has elapsed. Scopes run
// concurrently; a scope whose lock is held is skipped until the next tick.
//
// 2. BalanceJob - Polls the contract account balance hourly and logs it.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(passHandler, settingsRepo, router, provider, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The cron tick is fixed; the per-scope cadence is not. Each scope's
// effective settings carry worker_interval_minutes, so operators can slow
// down or speed up one hub without touching the others.
package jobs
