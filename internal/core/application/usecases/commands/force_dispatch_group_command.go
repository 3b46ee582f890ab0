package commands

import (
	"errors"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/guard"
)

var ErrForceDispatchGroupCommandIsNotConstructed = errors.New(
	"ForceDispatchGroupCommand must be created via NewForceDispatchGroupCommand constructor",
)

// ForceDispatchGroupCommand represents an operator's request to ship a
// group immediately, bypassing the policy engine's wait/size/savings
// checks.
type ForceDispatchGroupCommand struct { //nolint:recvcheck //using for validation
	groupID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

// NewForceDispatchGroupCommand creates a validated force-dispatch command.
func NewForceDispatchGroupCommand(groupID kernel.UUID, note string) (ForceDispatchGroupCommand, error) {
	cmd := ForceDispatchGroupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setGroupID(groupID); err != nil {
		return ForceDispatchGroupCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceDispatchGroupCommand) Validate() error {
	return c.guard.Validate(ErrForceDispatchGroupCommandIsNotConstructed)
}

// GroupID returns the target group's identifier.
func (c ForceDispatchGroupCommand) GroupID() kernel.UUID {
	return c.groupID
}

// Note returns the operator note recorded on the dispatch.
func (c ForceDispatchGroupCommand) Note() string {
	return c.note
}

func (c *ForceDispatchGroupCommand) setGroupID(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}

	c.groupID = groupID
	return nil
}
