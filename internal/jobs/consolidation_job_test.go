package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/domain/model/settings"
	"ostrov/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPassHandler struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func (h *recordingPassHandler) Handle(_ context.Context, cmd commands.RunConsolidationPassCommand) (commands.PassResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.calls == nil {
		h.calls = make(map[string]int)
	}
	h.calls[cmd.Scope()]++
	return commands.PassResult{Scope: cmd.Scope()}, h.err
}

func (h *recordingPassHandler) callsFor(scope string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[scope]
}

type staticSettingsRepository struct {
	intervalMinutes int
}

func (r *staticSettingsRepository) GetForScope(_ context.Context, scope string) (settings.GroupingSettings, error) {
	return settings.NewGroupingSettings(scope, true, settings.DefaultMaxWaitHours,
		settings.DefaultMinGroupSize, settings.DefaultMinSavingsKopecks,
		settings.DefaultPenaltyPerHourKopecks, r.intervalMinutes, time.Now().UTC())
}

func (r *staticSettingsRepository) Save(_ context.Context, _ settings.GroupingSettings) error {
	return nil
}

func newTestJob(handler *recordingPassHandler, intervalMinutes int) *ConsolidationJob {
	return NewConsolidationJob(handler,
		&staticSettingsRepository{intervalMinutes: intervalMinutes},
		services.NewHubRouter(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTick_FirstTickRunsEveryScope(t *testing.T) {
	handler := &recordingPassHandler{}
	job := newTestJob(handler, 30)

	job.tick(time.Now().UTC())

	router := services.NewHubRouter()
	require.NotEmpty(t, router.AllHubs())
	for _, hub := range router.AllHubs() {
		assert.Equal(t, 1, handler.callsFor(hub.Code), "scope %s", hub.Code)
	}
}

func TestTick_HonorsScopeCadence(t *testing.T) {
	handler := &recordingPassHandler{}
	job := newTestJob(handler, 30)
	start := time.Now().UTC()

	job.tick(start)
	job.tick(start.Add(time.Minute))
	job.tick(start.Add(29 * time.Minute))

	assert.Equal(t, 1, handler.callsFor("msk"))

	job.tick(start.Add(30 * time.Minute))

	assert.Equal(t, 2, handler.callsFor("msk"))
}

func TestTick_ScopeBusyIsNotAFailure(t *testing.T) {
	handler := &recordingPassHandler{err: commands.ErrScopeBusy}
	job := newTestJob(handler, 1)
	start := time.Now().UTC()

	job.tick(start)
	job.tick(start.Add(time.Minute))

	// a busy scope is retried on the next due tick
	assert.Equal(t, 2, handler.callsFor("msk"))
}

func TestDue_UnknownScopeIsDueImmediately(t *testing.T) {
	job := newTestJob(&recordingPassHandler{}, 30)

	assert.True(t, job.due("msk", time.Now().UTC()))
}
