package commands

import (
	"context"
	"time"

	"ostrov/internal/core/domain/services"
	"ostrov/internal/pkg/scopelock"
)

// ForceDispatchGroupCommandHandler ships a named group immediately. It
// blocks on the scope lock until any running consolidation pass finishes,
// then dispatches regardless of size or savings. A tariff comparison is
// attempted best-effort: when the provider is down the group ships with a
// null contract cost and no exception reaches the operator.
type ForceDispatchGroupCommandHandler struct {
	uowFactory    UoWFactory
	comparator    *services.TariffComparator
	consolidation services.Consolidation
	locks         *scopelock.Registry
}

// NewForceDispatchGroupCommandHandler creates a handler for operator
// force-dispatch requests.
func NewForceDispatchGroupCommandHandler(uowFactory UoWFactory,
	comparator *services.TariffComparator, consolidation services.Consolidation,
	locks *scopelock.Registry) ForceDispatchGroupCommandHandler {
	return ForceDispatchGroupCommandHandler{
		uowFactory:    uowFactory,
		comparator:    comparator,
		consolidation: consolidation,
		locks:         locks,
	}
}

// Handle processes the force-dispatch command.
func (h *ForceDispatchGroupCommandHandler) Handle(ctx context.Context, cmd ForceDispatchGroupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	scoped, err := uow.GroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return err
	}

	h.locks.Lock(scoped.HubCode())
	defer h.locks.Unlock(scoped.HubCode())

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.GroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return err
	}

	members, err := uow.OrderRepository().GetByGroupID(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if comparison, cmpErr := h.comparator.CompareGroup(ctx, members); cmpErr == nil {
		if err = applyComparison(aggregate, members, &comparison, now); err != nil {
			return err
		}
	}

	if err = h.consolidation.DispatchGroup(aggregate, members, true, cmd.Note(), now); err != nil {
		return err
	}

	for _, member := range members {
		if err = uow.OrderRepository().Update(ctx, member); err != nil {
			return err
		}
	}
	if err = uow.GroupRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
