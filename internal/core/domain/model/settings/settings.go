package settings

import (
	"errors"
	"fmt"
	"time"

	"ostrov/internal/pkg/errs"
)

// ScopeGlobal is the fallback settings scope applied to every hub without an
// override of its own.
const ScopeGlobal = "global"

// Defaults applied to scopes that were never configured.
const (
	DefaultMaxWaitHours          = 24
	DefaultMinGroupSize          = 3
	DefaultMinSavingsKopecks     = 50000
	DefaultPenaltyPerHourKopecks = 5000
	DefaultWorkerIntervalMinutes = 30
)

// ErrSettingsIsNotConstructed is returned when a GroupingSettings instance
// was not created through a constructor.
var ErrSettingsIsNotConstructed = errors.New("GroupingSettings must be created via NewGroupingSettings or DefaultGroupingSettings")

// GroupingSettings is the per-scope configuration of the consolidation
// policy: whether grouping runs at all, how long an order may wait, the
// target group size, the savings floor and the holding penalty the
// accumulation rule weighs against projected gains.
//
// A scope is either a hub code or ScopeGlobal.
type GroupingSettings struct {
	scope                 string
	enabled               bool
	maxWaitHours          int
	minGroupSize          int
	minSavingsKopecks     int64
	penaltyPerHourKopecks int64
	workerIntervalMinutes int
	updatedAt             time.Time
	isConstructed         bool
}

// NewGroupingSettings creates a validated settings record.
func NewGroupingSettings(scope string, enabled bool, maxWaitHours, minGroupSize int,
	minSavingsKopecks, penaltyPerHourKopecks int64, workerIntervalMinutes int,
	updatedAt time.Time) (GroupingSettings, error) {
	if scope == "" {
		return GroupingSettings{}, errs.NewValueIsRequiredError("settings scope")
	}
	if maxWaitHours <= 0 {
		return GroupingSettings{}, errs.NewValueIsInvalidErrorWithCause("max wait hours",
			fmt.Errorf("%d is not greater than 0", maxWaitHours))
	}
	if minGroupSize < 1 {
		return GroupingSettings{}, errs.NewValueIsInvalidErrorWithCause("min group size",
			fmt.Errorf("%d is less than 1", minGroupSize))
	}
	if minSavingsKopecks < 0 {
		return GroupingSettings{}, errs.NewValueIsInvalidError("min savings")
	}
	if penaltyPerHourKopecks < 0 {
		return GroupingSettings{}, errs.NewValueIsInvalidError("penalty per hour")
	}
	if workerIntervalMinutes < 1 {
		return GroupingSettings{}, errs.NewValueIsInvalidErrorWithCause("worker interval minutes",
			fmt.Errorf("%d is less than 1", workerIntervalMinutes))
	}

	return GroupingSettings{
		scope:                 scope,
		enabled:               enabled,
		maxWaitHours:          maxWaitHours,
		minGroupSize:          minGroupSize,
		minSavingsKopecks:     minSavingsKopecks,
		penaltyPerHourKopecks: penaltyPerHourKopecks,
		workerIntervalMinutes: workerIntervalMinutes,
		updatedAt:             updatedAt,
		isConstructed:         true,
	}, nil
}

// DefaultGroupingSettings returns the built-in defaults for a scope:
// grouping enabled, 24h wait ceiling, groups of 3, a 500₽ savings floor,
// a 50₽/h holding penalty and a 30-minute scheduler cadence.
func DefaultGroupingSettings(scope string, now time.Time) GroupingSettings {
	s, _ := NewGroupingSettings(scope, true, DefaultMaxWaitHours, DefaultMinGroupSize,
		DefaultMinSavingsKopecks, DefaultPenaltyPerHourKopecks,
		DefaultWorkerIntervalMinutes, now)
	return s
}

// Scope returns the hub code or ScopeGlobal.
func (s GroupingSettings) Scope() string {
	return s.scope
}

// Enabled reports whether the consolidation pass runs for the scope.
func (s GroupingSettings) Enabled() bool {
	return s.enabled
}

// MaxWaitHours returns the hard deadline: the longest an order may sit at
// the warehouse before it ships regardless of economics.
func (s GroupingSettings) MaxWaitHours() int {
	return s.maxWaitHours
}

// MinGroupSize returns the size at which a group ships once the savings
// floor is met.
func (s GroupingSettings) MinGroupSize() int {
	return s.minGroupSize
}

// MinSavingsKopecks returns the savings floor for a regular dispatch.
func (s GroupingSettings) MinSavingsKopecks() int64 {
	return s.minSavingsKopecks
}

// PenaltyPerHourKopecks returns the holding cost the accumulation rule
// weighs against the projected per-order savings gain.
func (s GroupingSettings) PenaltyPerHourKopecks() int64 {
	return s.penaltyPerHourKopecks
}

// WorkerIntervalMinutes returns how often the scheduler runs the scope.
func (s GroupingSettings) WorkerIntervalMinutes() int {
	return s.workerIntervalMinutes
}

// UpdatedAt returns when the record was last changed.
func (s GroupingSettings) UpdatedAt() time.Time {
	return s.updatedAt
}

// Validate ensures the settings were created through a constructor.
func (s GroupingSettings) Validate() error {
	if !s.isConstructed {
		return ErrSettingsIsNotConstructed
	}
	return nil
}
