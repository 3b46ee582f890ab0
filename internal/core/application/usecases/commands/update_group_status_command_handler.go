package commands

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/pkg/scopelock"
)

// UpdateGroupStatusCommandHandler applies an operator's group status change.
// Scheduling requires stamped economics; dispatching moves every member into
// customs handling; cancelling dissolves the group and returns members to
// the grouping pool. The handler takes the scope lock shared with the
// consolidation pass, so it never races an automatic dispatch.
type UpdateGroupStatusCommandHandler struct {
	uowFactory    UoWFactory
	consolidation services.Consolidation
	locks         *scopelock.Registry
}

// NewUpdateGroupStatusCommandHandler creates a handler for operator group
// status changes.
func NewUpdateGroupStatusCommandHandler(uowFactory UoWFactory,
	consolidation services.Consolidation, locks *scopelock.Registry) UpdateGroupStatusCommandHandler {
	return UpdateGroupStatusCommandHandler{
		uowFactory:    uowFactory,
		consolidation: consolidation,
		locks:         locks,
	}
}

// Handle processes the group status command atomically across the group and
// its members.
func (h *UpdateGroupStatusCommandHandler) Handle(ctx context.Context, cmd UpdateGroupStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	// Resolve the scope before taking its lock; the aggregate is reloaded
	// under the lock inside the transaction.
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

	now := time.Now().UTC()
	switch cmd.Target() {
	case group.Scheduled:
		if err = aggregate.Schedule(now); err != nil {
			return err
		}

	case group.Dispatched:
		members, memberErr := uow.OrderRepository().GetByGroupID(ctx, aggregate.ID())
		if memberErr != nil {
			return memberErr
		}
		if memberErr = h.consolidation.DispatchGroup(aggregate, members, false, cmd.Note(), now); memberErr != nil {
			return memberErr
		}
		for _, member := range members {
			if memberErr = uow.OrderRepository().Update(ctx, member); memberErr != nil {
				return memberErr
			}
		}

	case group.Cancelled:
		members, memberErr := uow.OrderRepository().GetByGroupID(ctx, aggregate.ID())
		if memberErr != nil {
			return memberErr
		}
		if memberErr = h.consolidation.DissolveGroup(aggregate, members, cmd.Note(), now); memberErr != nil {
			return memberErr
		}
		for _, member := range members {
			if memberErr = uow.OrderRepository().Update(ctx, member); memberErr != nil {
				return memberErr
			}
		}

	default:
		// forming has no inbound edges; let the table say so.
		if err = aggregate.Status().ValidateTransitionTo(cmd.Target()); err != nil {
			return err
		}
	}

	if err = uow.GroupRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
