package ports

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
)

// GroupRepository defines the persistence contract for shipment group
// aggregates: the group ledger.
type GroupRepository interface {
	// Add persists a new group aggregate to storage.
	Add(ctx context.Context, aggregate *group.Group) error

	// Update persists changes to an existing group aggregate.
	Update(ctx context.Context, aggregate *group.Group) error

	// Get retrieves a group aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such group exists.
	Get(ctx context.Context, id kernel.UUID) (*group.Group, error)

	// GetFormingByHub retrieves the group currently forming for a hub,
	// nil when none is open. At most one group forms per hub at a time.
	GetFormingByHub(ctx context.Context, hubCode string) (*group.Group, error)

	// CountCreatedOnDay returns how many groups were opened for the hub on
	// the calendar day of the given instant (UTC), used to allocate the
	// group number sequence.
	CountCreatedOnDay(ctx context.Context, hubCode string, day time.Time) (int, error)

	// Delete removes a forming group that lost all of its members, freeing
	// the hub's forming slot for the next pass.
	Delete(ctx context.Context, id kernel.UUID) error
}
