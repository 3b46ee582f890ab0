package group

import (
	"fmt"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment group:
//
//	forming → scheduled → dispatched
//
// A forming group may also be dispatched directly when the scheduler decides
// to form and ship in one pass. forming and scheduled groups may be
// cancelled; dispatched and cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Forming means the group is open and accepting members.
	Forming

	// Scheduled means the group is closed for membership and waiting for
	// dispatch, its economics stamped.
	Scheduled

	// Dispatched is the terminal success status: the group left the
	// warehouse and its members moved into customs handling.
	Dispatched

	// Cancelled is the terminal failure status: the group was dissolved
	// and its members returned to the grouping pool.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Forming:    "forming",
		Scheduled:  "scheduled",
		Dispatched: "dispatched",
		Cancelled:  "cancelled",
	}
}

var transitions = kernel.NewTransitionTable("group", map[Status][]Status{
	Forming:   {Scheduled, Dispatched, Cancelled},
	Scheduled: {Dispatched, Cancelled},
})

// StatusFromString parses the persisted snake_case form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known group status", s))
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid group status", s))
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
// (dispatched, cancelled).
func (s Status) IsTerminal() bool {
	return transitions.IsTerminal(s)
}
