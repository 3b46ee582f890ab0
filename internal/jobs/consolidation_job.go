package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// passTimeout bounds one scheduler pass; a stuck tariff provider must not
// hold the scope lock past the next few ticks.
const passTimeout = 2 * time.Minute

// ConsolidationPassHandler runs one scheduler pass for one scope.
type ConsolidationPassHandler interface {
	Handle(ctx context.Context, cmd commands.RunConsolidationPassCommand) (commands.PassResult, error)
}

// ConsolidationJob drives the consolidation scheduler. It ticks every
// minute, checks each hub scope against its own cadence
// (worker_interval_minutes of the scope's effective settings) and runs the
// due scopes concurrently.
type ConsolidationJob struct {
	handler  ConsolidationPassHandler
	settings ports.SettingsRepository
	router   *services.HubRouter
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewConsolidationJob creates the scheduler job over every hub of the
// routing registry.
func NewConsolidationJob(handler ConsolidationPassHandler,
	settings ports.SettingsRepository, router *services.HubRouter,
	logger *slog.Logger) *ConsolidationJob {
	return &ConsolidationJob{
		handler:  handler,
		settings: settings,
		router:   router,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "consolidation_job"),
		lastRun:  make(map[string]time.Time),
	}
}

// Start begins the consolidation job, ticking once a minute.
func (j *ConsolidationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.tick(time.Now().UTC())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consolidation job started (ticking every minute)")
	return nil
}

// Stop stops the consolidation job.
func (j *ConsolidationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consolidation job stopped")
}

// tick runs every due scope concurrently and waits for all of them, so one
// slow hub delays only its own next pass.
func (j *ConsolidationJob) tick(now time.Time) {
	var wg sync.WaitGroup
	for _, hub := range j.router.AllHubs() {
		scope := hub.Code
		if !j.due(scope, now) {
			continue
		}
		j.markRun(scope, now)

		wg.Add(1)
		go func() {
			defer wg.Done()
			j.runScope(scope)
		}()
	}
	wg.Wait()
}

// due reports whether the scope's cadence interval has elapsed since its
// last pass. A scope that never ran is due immediately.
func (j *ConsolidationJob) due(scope string, now time.Time) bool {
	interval := j.intervalFor(scope)

	j.mu.Lock()
	defer j.mu.Unlock()

	last, ok := j.lastRun[scope]
	return !ok || now.Sub(last) >= interval
}

func (j *ConsolidationJob) markRun(scope string, now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastRun[scope] = now
}

func (j *ConsolidationJob) intervalFor(scope string) time.Duration {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record, err := j.settings.GetForScope(ctx, scope)
	if err != nil {
		j.logger.WarnContext(ctx, "Falling back to hourly cadence, settings unavailable",
			"scope", scope, "error", err)
		return time.Hour
	}
	return time.Duration(record.WorkerIntervalMinutes()) * time.Minute
}

func (j *ConsolidationJob) runScope(scope string) {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	cmd, err := commands.NewRunConsolidationPassCommand(scope)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid consolidation scope", "scope", scope, "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// a force-dispatch or a previous pass still holds the scope lock
		if errors.Is(err, commands.ErrScopeBusy) {
			j.logger.InfoContext(ctx, "Scope busy, pass skipped", "scope", scope)
			return
		}
		j.logger.ErrorContext(ctx, "Consolidation pass failed", "scope", scope, "error", err)
		return
	}

	if result.Dispatched {
		j.logger.InfoContext(ctx, "Consolidation pass dispatched a group",
			"scope", scope,
			"group_number", result.GroupNumber,
			"orders_grouped", result.OrdersGrouped,
			"reason", result.Reason)
		return
	}

	j.logger.DebugContext(ctx, "Consolidation pass finished",
		"scope", scope,
		"verdict", result.Verdict.String(),
		"reason", result.Reason)
}
