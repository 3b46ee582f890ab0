package commands

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies an operator's status change
// through the order state machine.
//
// Two guard rails beyond the transition table itself:
//   - the batch_forming → received_warehouse edge is reserved for group
//     membership rollback and is refused here;
//   - cancelling a grouped order also removes it from its group, which is
//     only possible while the group is still forming.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for operator status
// changes.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command atomically with any group
// membership fallout.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if order.IsRegroupingEdge(aggregate.Status(), cmd.Target()) {
		return errs.NewValueIsInvalidError(
			"regrouping transition is reserved for group membership operations")
	}

	if cmd.Target() == order.Cancelled && aggregate.GroupID() != nil {
		memberGroup, groupErr := uow.GroupRepository().Get(ctx, *aggregate.GroupID())
		if groupErr != nil {
			return groupErr
		}
		if groupErr = memberGroup.RemoveMember(aggregate.ID(), aggregate.TotalWeightGrams(), now); groupErr != nil {
			return groupErr
		}
		if groupErr = uow.GroupRepository().Update(ctx, memberGroup); groupErr != nil {
			return groupErr
		}
	}

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Comment(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
