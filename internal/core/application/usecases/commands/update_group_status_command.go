package commands

import (
	"errors"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/guard"
)

var ErrUpdateGroupStatusCommandIsNotConstructed = errors.New(
	"UpdateGroupStatusCommand must be created via NewUpdateGroupStatusCommand constructor",
)

// UpdateGroupStatusCommand represents an operator's request to move a
// shipment group to a target status, with an optional note.
type UpdateGroupStatusCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID
	target  group.Status
	note    string

	guard guard.ConstructorGuard
}

// NewUpdateGroupStatusCommand creates a validated group status command.
func NewUpdateGroupStatusCommand(groupID kernel.UUID, target group.Status, note string) (UpdateGroupStatusCommand, error) {
	cmd := UpdateGroupStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupID(groupID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateGroupStatusCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateGroupStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateGroupStatusCommandIsNotConstructed)
}

// GroupID returns the target group's identifier.
func (c UpdateGroupStatusCommand) GroupID() kernel.UUID {
	return c.groupID
}

// Target returns the requested status.
func (c UpdateGroupStatusCommand) Target() group.Status {
	return c.target
}

// Note returns the optional operator note.
func (c UpdateGroupStatusCommand) Note() string {
	return c.note
}

func (c *UpdateGroupStatusCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}

	c.groupID = groupID
	return nil
}

func (c *UpdateGroupStatusCommand) setTarget(target group.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
