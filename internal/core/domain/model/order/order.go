package order

import (
	"errors"
	"time"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrAlreadyGrouped is returned when an order already carrying a group
	// reference is asked to join another group.
	ErrAlreadyGrouped = errors.New("order already belongs to a shipment group")

	// ErrNotGrouped is returned when a membership operation is applied to an
	// order with no group reference.
	ErrNotGrouped = errors.New("order does not belong to a shipment group")
)

// Order is the aggregate root of the parcel ledger. It owns the parcel's
// status lifecycle, its append-only status history, its group membership and
// the economics snapshot stamped at dispatch.
//
// Order maintains these invariants:
//   - Status changes only through the transition table; every change appends
//     a history entry.
//   - A group reference is present exactly while the status is one of the
//     grouped stages, or while the order sits in problem after having been
//     grouped.
//   - Totals are derived from the item list.
//   - Instances are created only through NewOrder or RestoreOrder.
type Order struct {
	id         kernel.UUID
	externalID string
	hubCode    string
	recipient  Recipient
	items      []Item

	status  Status
	groupID *kernel.UUID
	tariff  *TariffInfo
	history []StatusChange

	warehouseReceivedAt *time.Time
	groupedAt           *time.Time
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewOrder registers a parcel at intake. The order starts in Accepted and
// receives its first history entry immediately, so the history is never
// empty for a constructed order.
func NewOrder(id kernel.UUID, externalID, hubCode string, recipient Recipient,
	items []Item, now time.Time) (*Order, error) {
	o := &Order{
		status:        Accepted,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setExternalID(externalID),
		o.setHubCode(hubCode),
		o.setRecipient(recipient),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, NewStatusChange(nil, Accepted, "order accepted", now))
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The stored state is
// trusted; only structural validity is checked.
func RestoreOrder(id kernel.UUID, externalID, hubCode string, recipient Recipient,
	items []Item, status Status, groupID *kernel.UUID, tariff *TariffInfo,
	history []StatusChange, warehouseReceivedAt, groupedAt *time.Time,
	createdAt, updatedAt time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:                  id,
		externalID:          externalID,
		hubCode:             hubCode,
		recipient:           recipient,
		items:               items,
		status:              status,
		groupID:             groupID,
		tariff:              tariff,
		history:             history,
		warehouseReceivedAt: warehouseReceivedAt,
		groupedAt:           groupedAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ExternalID returns the storefront's own order number.
func (o *Order) ExternalID() string {
	return o.externalID
}

// HubCode returns the code of the consolidation hub routing this order.
func (o *Order) HubCode() string {
	return o.hubCode
}

// Recipient returns the delivery contact.
func (o *Order) Recipient() Recipient {
	return o.recipient
}

// Items returns the order's item list.
func (o *Order) Items() []Item {
	return o.items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// GroupID returns the shipment group reference, nil while ungrouped.
func (o *Order) GroupID() *kernel.UUID {
	return o.groupID
}

// Tariff returns the dispatch economics snapshot, nil until stamped.
func (o *Order) Tariff() *TariffInfo {
	return o.tariff
}

// History returns the append-only status history, oldest first.
func (o *Order) History() []StatusChange {
	return o.history
}

// WarehouseReceivedAt returns when the parcel arrived at the consolidation
// warehouse, nil before that. The grouping deadline clock starts here.
func (o *Order) WarehouseReceivedAt() *time.Time {
	return o.warehouseReceivedAt
}

// GroupedAt returns when the order joined its current group, nil while
// ungrouped. Group members are listed in this order.
func (o *Order) GroupedAt() *time.Time {
	return o.groupedAt
}

// CreatedAt returns the intake time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last state change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TotalAmountKopecks returns the order value summed over items.
func (o *Order) TotalAmountKopecks() int64 {
	var total int64
	for _, item := range o.items {
		total += item.TotalPriceKopecks()
	}
	return total
}

// TotalWeightGrams returns the parcel weight summed over items.
func (o *Order) TotalWeightGrams() int {
	var total int
	for _, item := range o.items {
		total += item.TotalWeightGrams()
	}
	return total
}

// IsEligibleForGrouping reports whether the consolidation pass may pick this
// order up: it sits at the warehouse and belongs to no group.
func (o *Order) IsEligibleForGrouping() bool {
	return o.status == ReceivedWarehouse && o.groupID == nil
}

// TransitionTo moves the order to target, enforcing the transition table and
// appending a history entry.
//
// Side effects tied to particular targets:
//   - received_warehouse stamps warehouseReceivedAt on first arrival;
//   - cancelled drops the group reference, since a cancelled order never
//     ships with its group;
//   - problem keeps the group reference so recovery can restore the order's
//     place in the group.
func (o *Order) TransitionTo(target Status, comment string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransitionTo(target); err != nil {
		return err
	}

	old := o.status
	o.status = target

	if target == ReceivedWarehouse && o.warehouseReceivedAt == nil {
		o.warehouseReceivedAt = &now
	}
	if target == Cancelled {
		o.groupID = nil
		o.groupedAt = nil
	}

	o.history = append(o.history, NewStatusChange(&old, target, comment, now))
	o.updatedAt = now
	return nil
}

// JoinGroup places the order into a forming shipment group: the group
// reference is set and the status moves to batch_forming in one step.
func (o *Order) JoinGroup(groupID kernel.UUID, comment string, now time.Time) error {
	if o.groupID != nil {
		return ErrAlreadyGrouped
	}
	if err := groupID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransitionTo(BatchForming); err != nil {
		return err
	}

	old := o.status
	o.status = BatchForming
	o.groupID = &groupID
	o.groupedAt = &now
	o.history = append(o.history, NewStatusChange(&old, BatchForming, comment, now))
	o.updatedAt = now
	return nil
}

// LeaveGroup removes the order from its undispatched group, reverting it to
// received_warehouse through the internal regrouping edge. The group
// reference, membership time and any stamped tariff are dropped; the order
// becomes eligible for grouping again.
func (o *Order) LeaveGroup(comment string, now time.Time) error {
	if o.groupID == nil {
		return ErrNotGrouped
	}
	if err := o.status.ValidateTransitionTo(ReceivedWarehouse); err != nil {
		return err
	}

	old := o.status
	o.status = ReceivedWarehouse
	o.groupID = nil
	o.groupedAt = nil
	o.tariff = nil
	o.history = append(o.history, NewStatusChange(&old, ReceivedWarehouse, comment, now))
	o.updatedAt = now
	return nil
}

// SetTariff stamps the dispatch economics snapshot onto the order.
func (o *Order) SetTariff(tariff TariffInfo, now time.Time) error {
	if err := tariff.Validate(); err != nil {
		return err
	}
	o.tariff = &tariff
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("external order number")
	}
	o.externalID = externalID
	return nil
}

func (o *Order) setHubCode(hubCode string) error {
	if hubCode == "" {
		return errs.NewValueIsRequiredError("hub code")
	}
	o.hubCode = hubCode
	return nil
}

func (o *Order) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	o.recipient = recipient
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
