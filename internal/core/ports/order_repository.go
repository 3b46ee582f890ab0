package ports

import (
	"context"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates:
// the parcel ledger. Orders are stored with their items and full status
// history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetEligibleByHub retrieves the grouping pool of a hub: orders in
	// received_warehouse with no group, ordered by warehouse-receipt time
	// ascending. The oldest order drives the deadline rule.
	GetEligibleByHub(ctx context.Context, hubCode string) ([]*order.Order, error)

	// GetByGroupID retrieves the members of a group in join order.
	GetByGroupID(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error)
}
