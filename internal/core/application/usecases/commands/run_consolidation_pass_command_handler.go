package commands

import (
	"context"
	"fmt"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/model/settings"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/pkg/scopelock"
)

// PassResult summarizes one consolidation pass for the scheduler's log.
type PassResult struct {
	Scope         string
	Verdict       services.Verdict
	Reason        string
	GroupNumber   string
	OrdersGrouped int
	Dispatched    bool
}

// RunConsolidationPassCommandHandler runs one scheduler pass over a scope:
// load a settings snapshot, gather the eligible pool, ask the policy engine,
// and on FormAndDispatch commit group formation and dispatch through the
// ledgers.
//
// The pass takes the scope lock non-blocking: if a force-dispatch or a
// previous pass still holds it, the pass yields with ErrScopeBusy and the
// scheduler retries on the next tick. Formation and dispatch commit in two
// steps — membership first, economics and dispatch second — so a blocked
// dispatch leaves a resumable forming group rather than a half-joined pool.
type RunConsolidationPassCommandHandler struct {
	uowFactory    UoWFactory
	comparator    *services.TariffComparator
	policy        services.GroupingPolicy
	consolidation services.Consolidation
	router        *services.HubRouter
	locks         *scopelock.Registry
}

// NewRunConsolidationPassCommandHandler creates a handler for scheduler
// passes.
func NewRunConsolidationPassCommandHandler(uowFactory UoWFactory,
	comparator *services.TariffComparator, policy services.GroupingPolicy,
	consolidation services.Consolidation, router *services.HubRouter,
	locks *scopelock.Registry) RunConsolidationPassCommandHandler {
	return RunConsolidationPassCommandHandler{
		uowFactory:    uowFactory,
		comparator:    comparator,
		policy:        policy,
		consolidation: consolidation,
		router:        router,
		locks:         locks,
	}
}

// Handle runs the pass and reports what it decided and did.
func (h *RunConsolidationPassCommandHandler) Handle(ctx context.Context, cmd RunConsolidationPassCommand) (PassResult, error) {
	result := PassResult{Scope: cmd.Scope(), Verdict: services.Wait}
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	hub, ok := h.router.HubByCode(cmd.Scope())
	if !ok {
		return result, fmt.Errorf("unknown scope %q", cmd.Scope())
	}

	if !h.locks.TryLock(hub.Code) {
		return result, ErrScopeBusy
	}
	defer h.locks.Unlock(hub.Code)

	now := time.Now().UTC()
	uow := h.uowFactory.Create()

	cfg, err := uow.SettingsRepository().GetForScope(ctx, hub.Code)
	if err != nil {
		return result, err
	}

	// A forming group left by a previously blocked dispatch is finished
	// before any new formation starts.
	leftover, err := uow.GroupRepository().GetFormingByHub(ctx, hub.Code)
	if err != nil {
		return result, err
	}
	if leftover != nil && leftover.OrdersCount() == 0 {
		// Cancelling the last member leaves an empty forming shell that
		// would otherwise hold the hub's forming slot forever.
		if err = uow.GroupRepository().Delete(ctx, leftover.ID()); err != nil {
			return result, err
		}
		leftover = nil
	}
	if leftover != nil {
		return h.resumeForming(ctx, leftover, cfg, now)
	}

	eligible, err := uow.OrderRepository().GetEligibleByHub(ctx, hub.Code)
	if err != nil {
		return result, err
	}

	comparison := h.compareBestEffort(ctx, cfg, eligible)
	decision := h.policy.Evaluate(now, eligible, cfg, comparison)
	result.Verdict = decision.Verdict
	result.Reason = decision.Reason
	if decision.Verdict != services.FormAndDispatch {
		return result, nil
	}

	formed, err := h.formGroup(ctx, hub, eligible, now)
	if err != nil {
		return result, err
	}
	result.GroupNumber = formed.Number()
	result.OrdersGrouped = len(eligible)

	if err = h.dispatchFormed(ctx, formed, eligible, comparison, decision.Reason, now); err != nil {
		return result, err
	}
	result.Dispatched = true
	return result, nil
}

// compareBestEffort quotes the candidate pool, treating any provider
// failure as "no signal this pass". The policy engine then waits unless the
// deadline rule forces a blind dispatch.
func (h *RunConsolidationPassCommandHandler) compareBestEffort(ctx context.Context,
	cfg settings.GroupingSettings, eligible []*order.Order) *services.GroupTariffComparison {
	if !cfg.Enabled() || len(eligible) == 0 {
		return nil
	}

	comparison, err := h.comparator.CompareGroup(ctx, eligible)
	if err != nil {
		return nil
	}
	return &comparison
}

// formGroup commits group creation and membership in one transaction. Any
// member that cannot join aborts the whole formation (ErrGroupingAborted)
// and the transaction rolls back with no order touched.
func (h *RunConsolidationPassCommandHandler) formGroup(ctx context.Context,
	hub services.HubInfo, eligible []*order.Order, now time.Time) (*group.Group, error) {
	uow := h.uowFactory.Create()

	seq, err := uow.GroupRepository().CountCreatedOnDay(ctx, hub.Code, now)
	if err != nil {
		return nil, err
	}

	formed, err := group.NewGroup(kernel.NewUUID(),
		group.FormatNumber(hub.Code, now, seq+1), hub.Code, hub.Name, hub.Transport, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	comment := fmt.Sprintf("joined group %s to %s", formed.Number(), formed.HubName())
	for _, member := range eligible {
		if err = member.JoinGroup(formed.ID(), comment, now); err != nil {
			return nil, fmt.Errorf("%w: order %s: %w", ErrGroupingAborted, member.ID(), err)
		}
		if err = formed.AddMember(member.ID(), member.TotalWeightGrams(), now); err != nil {
			return nil, fmt.Errorf("%w: order %s: %w", ErrGroupingAborted, member.ID(), err)
		}
		if err = uow.OrderRepository().Update(ctx, member); err != nil {
			return nil, err
		}
	}

	if err = uow.GroupRepository().Add(ctx, formed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return formed, nil
}

// dispatchFormed commits economics stamping, scheduling and dispatch in a
// second transaction. A quoted group passes through scheduled so its
// scheduling moment is recorded; without a comparison only the deadline
// reason ships, forced, straight from forming with a null contract cost. On
// failure the forming group stays persisted and the next pass resumes it.
func (h *RunConsolidationPassCommandHandler) dispatchFormed(ctx context.Context,
	formed *group.Group, members []*order.Order,
	comparison *services.GroupTariffComparison, reason string, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	forced := comparison == nil
	note := ""
	if forced {
		note = fmt.Sprintf("dispatched without tariff quote: %s", reason)
	}

	if comparison != nil {
		if err := applyComparison(formed, members, comparison, now); err != nil {
			return err
		}
		if err := formed.Schedule(now); err != nil {
			return err
		}
	}

	if err := h.consolidation.DispatchGroup(formed, members, forced, note, now); err != nil {
		return err
	}

	for _, member := range members {
		if err := uow.OrderRepository().Update(ctx, member); err != nil {
			return err
		}
	}
	if err := uow.GroupRepository().Update(ctx, formed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resumeForming finishes a group whose dispatch was blocked on an earlier
// pass: re-quote, stamp, dispatch. Without a quote the group ships only
// once its oldest member crosses the deadline; otherwise it stays forming
// for the next pass or a force-dispatch.
func (h *RunConsolidationPassCommandHandler) resumeForming(ctx context.Context,
	leftover *group.Group, cfg settings.GroupingSettings, now time.Time) (PassResult, error) {
	result := PassResult{
		Scope:         leftover.HubCode(),
		Verdict:       services.FormAndDispatch,
		Reason:        "resume_forming_group",
		GroupNumber:   leftover.Number(),
		OrdersGrouped: leftover.OrdersCount(),
	}

	uow := h.uowFactory.Create()
	members, err := uow.OrderRepository().GetByGroupID(ctx, leftover.ID())
	if err != nil {
		return result, err
	}

	var comparison *services.GroupTariffComparison
	if quoted, cmpErr := h.comparator.CompareGroup(ctx, members); cmpErr == nil {
		comparison = &quoted
	} else if !h.deadlinePassed(members, cfg, now) {
		result.Verdict = services.Wait
		result.Reason = services.ReasonNoTariffSignal
		return result, nil
	} else {
		result.Reason = services.ReasonDeadlineExceeded
	}

	if err = h.dispatchFormed(ctx, leftover, members, comparison, result.Reason, now); err != nil {
		return result, err
	}
	result.Dispatched = true
	return result, nil
}

// deadlinePassed reports whether any member has been waiting longer than
// the scope's wait ceiling, counted from its warehouse arrival.
func (h *RunConsolidationPassCommandHandler) deadlinePassed(members []*order.Order,
	cfg settings.GroupingSettings, now time.Time) bool {
	for _, member := range members {
		since := member.CreatedAt()
		if member.WarehouseReceivedAt() != nil {
			since = *member.WarehouseReceivedAt()
		}
		if now.Sub(since).Hours() >= float64(cfg.MaxWaitHours()) {
			return true
		}
	}
	return false
}
