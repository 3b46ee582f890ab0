package commands

import (
	"context"
	"time"
)

// MarkGroupArrivedCommandHandler records a dispatched group's arrival at
// its destination hub. Arrival touches only the group aggregate; member
// orders continue through customs on their own lifecycle.
type MarkGroupArrivedCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkGroupArrivedCommandHandler creates a handler for arrival
// confirmations.
func NewMarkGroupArrivedCommandHandler(uowFactory UoWFactory) MarkGroupArrivedCommandHandler {
	return MarkGroupArrivedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stamps the arrival moment on the group.
func (h *MarkGroupArrivedCommandHandler) Handle(ctx context.Context, cmd MarkGroupArrivedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.GroupRepository().Get(ctx, cmd.GroupID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkArrivedAtHub(time.Now().UTC()); err != nil {
		return err
	}

	return uow.GroupRepository().Update(ctx, aggregate)
}
