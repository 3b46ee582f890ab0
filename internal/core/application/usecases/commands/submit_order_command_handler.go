package commands

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/services"
)

// SubmitOrderCommandHandler handles intake: it routes the submission to a
// consolidation hub by recipient index and registers the order in accepted
// status.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	router     *services.HubRouter
}

// NewSubmitOrderCommandHandler creates a handler for order intake.
func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, router *services.HubRouter) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		router:     router,
	}
}

// Handle processes the intake command: builds the recipient and item value
// objects, routes the hub, and persists the new order atomically.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	recipient, err := order.NewRecipient(cmd.RecipientName(), cmd.RecipientPhone(),
		cmd.RecipientAddress(), cmd.RecipientPostalCode())
	if err != nil {
		return err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, submitted := range cmd.Items() {
		item, itemErr := order.NewItem(submitted.Name, submitted.Quantity,
			submitted.PriceKopecks, submitted.WeightGrams)
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	hub := h.router.HubForPostalCode(cmd.RecipientPostalCode())
	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.ExternalID(), hub.Code,
		recipient, items, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
