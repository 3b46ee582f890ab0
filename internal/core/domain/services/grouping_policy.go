package services

import (
	"time"

	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/model/settings"
)

// Verdict is the outcome of one policy evaluation for a scope.
type Verdict int

const (
	// Wait means no action this pass: grouping disabled, no eligible
	// orders, or no usable tariff signal.
	Wait Verdict = iota

	// Accumulate means holding is projected to unlock more savings than it
	// costs; keep waiting.
	Accumulate

	// FormAndDispatch means form a group from the eligible set and ship it
	// this pass.
	FormAndDispatch
)

func (v Verdict) String() string {
	switch v {
	case Wait:
		return "wait"
	case Accumulate:
		return "accumulate"
	case FormAndDispatch:
		return "form_and_dispatch"
	}
	return "unknown"
}

// Decision reasons, recorded in logs and operator notes.
const (
	ReasonDisabled         = "grouping_disabled"
	ReasonNoOrders         = "no_eligible_orders"
	ReasonDeadlineExceeded = "deadline_exceeded"
	ReasonNoTariffSignal   = "tariff_unavailable"
	ReasonMinSizeReached   = "min_size_reached"
	ReasonProjectedGain    = "projected_gain_exceeds_penalty"
	ReasonHoldingTooCostly = "holding_cost_exceeds_gain"
)

// Decision is a verdict plus the rule that produced it.
type Decision struct {
	Verdict Verdict
	Reason  string
}

// GroupingPolicy is the pure decision function of the consolidation
// scheduler. Evaluate has no side effects and is deterministic given the
// same clock, order set, settings and comparison.
type GroupingPolicy struct{}

// NewGroupingPolicy creates a GroupingPolicy instance.
func NewGroupingPolicy() GroupingPolicy {
	return GroupingPolicy{}
}

// Evaluate decides whether the scope's eligible orders ship this pass.
// eligible must be ordered by warehouse-receipt time ascending; comparison
// is the group-level tariff comparison for the full eligible set, nil when
// the provider could not quote it this pass.
//
// Rules, in order:
//  1. disabled scope → Wait
//  2. empty pool → Wait
//  3. oldest order waited ≥ max_wait_hours → FormAndDispatch, regardless
//     of economics (the deadline is a hard guarantee)
//  4. no comparison → Wait (nothing to weigh; the deadline rule above is
//     the only way to ship blind)
//  5. pool ≥ min_group_size and savings ≥ min_savings → FormAndDispatch
//  6. marginal-wait test: project the hourly savings gain from letting the
//     pool grow one more interval; Accumulate while it beats the holding
//     penalty, otherwise FormAndDispatch
func (GroupingPolicy) Evaluate(now time.Time, eligible []*order.Order,
	cfg settings.GroupingSettings, comparison *GroupTariffComparison) Decision {
	if !cfg.Enabled() {
		return Decision{Verdict: Wait, Reason: ReasonDisabled}
	}
	if len(eligible) == 0 {
		return Decision{Verdict: Wait, Reason: ReasonNoOrders}
	}

	oldestWaitHours := waitHours(eligible[0], now)
	if oldestWaitHours >= float64(cfg.MaxWaitHours()) {
		return Decision{Verdict: FormAndDispatch, Reason: ReasonDeadlineExceeded}
	}

	if comparison == nil {
		return Decision{Verdict: Wait, Reason: ReasonNoTariffSignal}
	}

	if len(eligible) >= cfg.MinGroupSize() &&
		comparison.SavingsKopecks >= cfg.MinSavingsKopecks() {
		return Decision{Verdict: FormAndDispatch, Reason: ReasonMinSizeReached}
	}

	if projectedHourlyGainKopecks(eligible, oldestWaitHours, comparison) >
		float64(cfg.PenaltyPerHourKopecks()) {
		return Decision{Verdict: Accumulate, Reason: ReasonProjectedGain}
	}
	return Decision{Verdict: FormAndDispatch, Reason: ReasonHoldingTooCostly}
}

// projectedHourlyGainKopecks estimates the savings unlocked per hour of
// further waiting: the observed arrival rate of eligible orders times the
// current per-order savings. With one order or no observed waiting time
// there is no signal and the projection is zero.
func projectedHourlyGainKopecks(eligible []*order.Order, oldestWaitHours float64,
	comparison *GroupTariffComparison) float64 {
	if len(eligible) < 2 || oldestWaitHours <= 0 {
		return 0
	}

	arrivalsPerHour := float64(len(eligible)-1) / oldestWaitHours
	perOrderSavings := float64(comparison.SavingsKopecks) / float64(len(eligible))
	if perOrderSavings < 0 {
		return 0
	}
	return perOrderSavings * arrivalsPerHour
}

// waitHours measures how long an order has sat at the warehouse. Orders
// restored without an arrival stamp fall back to their intake time.
func waitHours(o *order.Order, now time.Time) float64 {
	since := o.CreatedAt()
	if o.WarehouseReceivedAt() != nil {
		since = *o.WarehouseReceivedAt()
	}
	return now.Sub(since).Hours()
}
