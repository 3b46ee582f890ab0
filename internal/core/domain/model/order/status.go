package order

import (
	"fmt"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The full path runs from
// intake acceptance through warehouse receipt, group formation, customs and
// carrier handoff to delivery:
//
//	accepted → awaiting_pickup → received_warehouse → batch_forming →
//	customs_presented → customs_cleared → awaiting_carrier → shipped →
//	in_transit → delivered
//
// Every stage up to batch_forming may be cancelled; the customs and carrier
// stages may fall into problem instead, from which an operator can recover
// the order back into any earlier stage. delivered and cancelled are
// terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Accepted is the initial status assigned at intake.
	Accepted

	// AwaitingPickup means the order is waiting to be collected from the
	// storefront's warehouse.
	AwaitingPickup

	// ReceivedWarehouse means the parcel physically arrived at the
	// consolidation warehouse. Orders in this status with no group are
	// eligible for grouping.
	ReceivedWarehouse

	// BatchForming means the order has been placed into a forming
	// shipment group.
	BatchForming

	// CustomsPresented means the order's group was dispatched and the
	// parcel is presented to customs.
	CustomsPresented

	// CustomsCleared means customs released the parcel.
	CustomsCleared

	// AwaitingCarrier means the parcel waits for carrier handoff.
	AwaitingCarrier

	// Shipped means the carrier accepted the parcel.
	Shipped

	// InTransit means the parcel is moving on the trunk route.
	InTransit

	// Delivered is the terminal success status.
	Delivered

	// Cancelled is the terminal failure status.
	Cancelled

	// Problem marks an order stuck in customs or carrier handling; an
	// operator recovers it back into an earlier stage.
	Problem
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Accepted:          "accepted",
		AwaitingPickup:    "awaiting_pickup",
		ReceivedWarehouse: "received_warehouse",
		BatchForming:      "batch_forming",
		CustomsPresented:  "customs_presented",
		CustomsCleared:    "customs_cleared",
		AwaitingCarrier:   "awaiting_carrier",
		Shipped:           "shipped",
		InTransit:         "in_transit",
		Delivered:         "delivered",
		Cancelled:         "cancelled",
		Problem:           "problem",
	}
}

// transitions is the order status registry: the exhaustive table of legal
// transitions. Any pair not present is illegal. The
// batch_forming → received_warehouse edge is internal: it is the regrouping
// path used when a member leaves an undispatched group, and the operator
// status-change surface refuses it.
var transitions = kernel.NewTransitionTable("order", map[Status][]Status{
	Accepted:          {AwaitingPickup, Cancelled},
	AwaitingPickup:    {ReceivedWarehouse, Cancelled},
	ReceivedWarehouse: {BatchForming, Cancelled},
	BatchForming:      {CustomsPresented, ReceivedWarehouse, Cancelled},
	CustomsPresented:  {CustomsCleared, Problem},
	CustomsCleared:    {AwaitingCarrier, Problem},
	AwaitingCarrier:   {Shipped, Problem},
	Shipped:           {InTransit},
	InTransit:         {Delivered},
	Problem: {
		Accepted, AwaitingPickup, ReceivedWarehouse, BatchForming,
		CustomsPresented, CustomsCleared, AwaitingCarrier, Shipped,
	},
})

// StatusFromString parses the persisted snake_case form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known order status", s))
}

// String returns the snake_case name of the status, as stored in history
// entries and exposed on the read surface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Problem {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// CanTransitionTo reports whether the registry allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	return transitions.Can(s, target)
}

// ValidateTransitionTo returns an IllegalTransitionError when the registry
// forbids moving to target.
func (s Status) ValidateTransitionTo(target Status) error {
	return transitions.Validate(s, target)
}

// IsTerminal reports whether the status has no outgoing transitions
// (delivered, cancelled).
func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}

// IsGrouped reports whether the status implies membership in a shipment
// group: the stages from batch_forming through delivered.
func (s Status) IsGrouped() bool {
	return s >= BatchForming && s <= Delivered
}

// MayHoldGroupRef reports whether an order in this status may carry a group
// reference. problem keeps the reference of an already-grouped order so that
// recovery can restore its place in the group.
func (s Status) MayHoldGroupRef() bool {
	return s.IsGrouped() || s == Problem
}

// IsRegroupingEdge reports whether the (from, to) pair is the internal
// regrouping transition reserved for group membership rollback. The operator
// status-change surface rejects it.
func IsRegroupingEdge(from, to Status) bool {
	return from == BatchForming && to == ReceivedWarehouse
}
