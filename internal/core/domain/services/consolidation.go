package services

import (
	"errors"
	"fmt"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/order"
)

// ErrPartialDispatchBlocked is returned when at least one member of a group
// cannot move into customs handling. The dispatch is all-or-nothing: the
// group stays in its current status and no member changes.
var ErrPartialDispatchBlocked = errors.New("dispatch blocked: not every member can move to customs")

// Consolidation is the domain service committing a group dispatch across
// the group and all of its member orders atomically, in memory. The caller
// persists the touched aggregates inside one transaction.
type Consolidation struct{}

// NewConsolidation creates a Consolidation instance.
func NewConsolidation() Consolidation {
	return Consolidation{}
}

// DispatchGroup ships a group: the group moves to dispatched and every
// member moves batch_forming → customs_presented.
//
// All member transitions are validated before anything mutates, so either
// the whole dispatch applies or ErrPartialDispatchBlocked is returned with
// no aggregate touched. forced and note are passed through to the group's
// own dispatch rules.
func (Consolidation) DispatchGroup(g *group.Group, members []*order.Order,
	forced bool, note string, now time.Time) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if len(members) != g.OrdersCount() {
		return fmt.Errorf("%w: group lists %d members, %d loaded",
			ErrPartialDispatchBlocked, g.OrdersCount(), len(members))
	}

	for _, member := range members {
		if err := member.Validate(); err != nil {
			return err
		}
		if member.GroupID() == nil || !member.GroupID().IsEqual(g.ID()) {
			return fmt.Errorf("%w: order %s does not belong to group %s",
				ErrPartialDispatchBlocked, member.ID(), g.Number())
		}
		if err := member.Status().ValidateTransitionTo(order.CustomsPresented); err != nil {
			return fmt.Errorf("%w: order %s: %w", ErrPartialDispatchBlocked, member.ID(), err)
		}
	}

	if err := g.Dispatch(forced, note, now); err != nil {
		return err
	}

	comment := fmt.Sprintf("dispatched with group %s to %s", g.Number(), g.HubName())
	for _, member := range members {
		if err := member.TransitionTo(order.CustomsPresented, comment, now); err != nil {
			// Pre-validated above; a failure here means concurrent mutation
			// of an aggregate that must be pass-local.
			return fmt.Errorf("%w: order %s: %w", ErrPartialDispatchBlocked, member.ID(), err)
		}
	}
	return nil
}

// DissolveGroup cancels a group and returns every member to the grouping
// pool. Symmetric to DispatchGroup: member rollbacks are validated before
// the group mutates.
func (Consolidation) DissolveGroup(g *group.Group, members []*order.Order,
	note string, now time.Time) error {
	if err := g.Validate(); err != nil {
		return err
	}

	for _, member := range members {
		if err := member.Validate(); err != nil {
			return err
		}
		if err := member.Status().ValidateTransitionTo(order.ReceivedWarehouse); err != nil {
			return fmt.Errorf("%w: order %s: %w", ErrPartialDispatchBlocked, member.ID(), err)
		}
	}

	if err := g.Cancel(note, now); err != nil {
		return err
	}

	comment := fmt.Sprintf("group %s cancelled", g.Number())
	for _, member := range members {
		if err := member.LeaveGroup(comment, now); err != nil {
			return fmt.Errorf("%w: order %s: %w", ErrPartialDispatchBlocked, member.ID(), err)
		}
	}
	return nil
}
