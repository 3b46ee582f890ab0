package commands

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/settings"
)

// UpdateGroupingSettingsCommandHandler merges a partial update onto the
// scope's effective settings and persists the result. The merged record is
// rebuilt through the settings constructor, so bounds are enforced on every
// write.
type UpdateGroupingSettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
}

// NewUpdateGroupingSettingsCommandHandler creates a handler for settings
// updates.
func NewUpdateGroupingSettingsCommandHandler(uowFactory SettingsUoWFactory) UpdateGroupingSettingsCommandHandler {
	return UpdateGroupingSettingsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settings update command.
func (h *UpdateGroupingSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateGroupingSettingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.SettingsRepository().GetForScope(ctx, cmd.Scope())
	if err != nil {
		return err
	}

	enabled := current.Enabled()
	if cmd.Enabled() != nil {
		enabled = *cmd.Enabled()
	}
	maxWaitHours := current.MaxWaitHours()
	if cmd.MaxWaitHours() != nil {
		maxWaitHours = *cmd.MaxWaitHours()
	}
	minGroupSize := current.MinGroupSize()
	if cmd.MinGroupSize() != nil {
		minGroupSize = *cmd.MinGroupSize()
	}
	minSavings := current.MinSavingsKopecks()
	if cmd.MinSavingsKopecks() != nil {
		minSavings = *cmd.MinSavingsKopecks()
	}
	penalty := current.PenaltyPerHourKopecks()
	if cmd.PenaltyPerHourKopecks() != nil {
		penalty = *cmd.PenaltyPerHourKopecks()
	}
	interval := current.WorkerIntervalMinutes()
	if cmd.WorkerIntervalMinutes() != nil {
		interval = *cmd.WorkerIntervalMinutes()
	}

	merged, err := settings.NewGroupingSettings(cmd.Scope(), enabled, maxWaitHours,
		minGroupSize, minSavings, penalty, interval, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.SettingsRepository().Save(ctx, merged); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
