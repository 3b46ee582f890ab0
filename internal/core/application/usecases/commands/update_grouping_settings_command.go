package commands

import (
	"errors"

	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var ErrUpdateGroupingSettingsCommandIsNotConstructed = errors.New(
	"UpdateGroupingSettingsCommand must be created via NewUpdateGroupingSettingsCommand constructor",
)

// UpdateGroupingSettingsCommand represents a partial settings update for a
// scope: nil fields keep their current value. Changes take effect on the
// next scheduler pass.
type UpdateGroupingSettingsCommand struct { //nolint:recvcheck //using for validation
	scope                 string
	enabled               *bool
	maxWaitHours          *int
	minGroupSize          *int
	minSavingsKopecks     *int64
	penaltyPerHourKopecks *int64
	workerIntervalMinutes *int

	guard guard.ConstructorGuard
}

// NewUpdateGroupingSettingsCommand creates a validated partial update.
// Field-level bounds are enforced by the settings value object when the
// merged record is built.
func NewUpdateGroupingSettingsCommand(scope string, enabled *bool,
	maxWaitHours, minGroupSize *int, minSavingsKopecks, penaltyPerHourKopecks *int64,
	workerIntervalMinutes *int) (UpdateGroupingSettingsCommand, error) {
	if scope == "" {
		return UpdateGroupingSettingsCommand{}, errs.NewValueIsRequiredError("settings scope")
	}

	return UpdateGroupingSettingsCommand{
		scope:                 scope,
		enabled:               enabled,
		maxWaitHours:          maxWaitHours,
		minGroupSize:          minGroupSize,
		minSavingsKopecks:     minSavingsKopecks,
		penaltyPerHourKopecks: penaltyPerHourKopecks,
		workerIntervalMinutes: workerIntervalMinutes,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateGroupingSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateGroupingSettingsCommandIsNotConstructed)
}

// Scope returns the settings scope being updated.
func (c UpdateGroupingSettingsCommand) Scope() string {
	return c.scope
}

// Enabled returns the new enabled flag, nil to keep the current value.
func (c UpdateGroupingSettingsCommand) Enabled() *bool {
	return c.enabled
}

// MaxWaitHours returns the new wait ceiling, nil to keep the current value.
func (c UpdateGroupingSettingsCommand) MaxWaitHours() *int {
	return c.maxWaitHours
}

// MinGroupSize returns the new size trigger, nil to keep the current value.
func (c UpdateGroupingSettingsCommand) MinGroupSize() *int {
	return c.minGroupSize
}

// MinSavingsKopecks returns the new savings floor, nil to keep the current
// value.
func (c UpdateGroupingSettingsCommand) MinSavingsKopecks() *int64 {
	return c.minSavingsKopecks
}

// PenaltyPerHourKopecks returns the new holding penalty, nil to keep the
// current value.
func (c UpdateGroupingSettingsCommand) PenaltyPerHourKopecks() *int64 {
	return c.penaltyPerHourKopecks
}

// WorkerIntervalMinutes returns the new scheduler cadence, nil to keep the
// current value.
func (c UpdateGroupingSettingsCommand) WorkerIntervalMinutes() *int {
	return c.workerIntervalMinutes
}
