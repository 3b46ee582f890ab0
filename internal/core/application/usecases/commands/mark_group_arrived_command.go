package commands

import (
	"errors"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/guard"
)

var ErrMarkGroupArrivedCommandIsNotConstructed = errors.New(
	"MarkGroupArrivedCommand must be created via NewMarkGroupArrivedCommand constructor",
)

// MarkGroupArrivedCommand represents an operator's confirmation that a
// dispatched group's shipment reached its destination hub.
type MarkGroupArrivedCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkGroupArrivedCommand creates a validated arrival command.
func NewMarkGroupArrivedCommand(groupID kernel.UUID) (MarkGroupArrivedCommand, error) {
	cmd := MarkGroupArrivedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setGroupID(groupID); err != nil {
		return MarkGroupArrivedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkGroupArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkGroupArrivedCommandIsNotConstructed)
}

// GroupID returns the arrived group's identifier.
func (c MarkGroupArrivedCommand) GroupID() kernel.UUID {
	return c.groupID
}

func (c *MarkGroupArrivedCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}

	c.groupID = groupID
	return nil
}
