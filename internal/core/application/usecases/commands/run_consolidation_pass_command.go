package commands

import (
	"errors"

	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var ErrRunConsolidationPassCommandIsNotConstructed = errors.New(
	"RunConsolidationPassCommand must be created via NewRunConsolidationPassCommand constructor",
)

// RunConsolidationPassCommand represents one scheduler pass over a single
// scope (hub).
type RunConsolidationPassCommand struct { //nolint:recvcheck //using for validation
	scope string

	guard guard.ConstructorGuard
}

// NewRunConsolidationPassCommand creates a validated pass command.
func NewRunConsolidationPassCommand(scope string) (RunConsolidationPassCommand, error) {
	if scope == "" {
		return RunConsolidationPassCommand{}, errs.NewValueIsRequiredError("scope")
	}

	return RunConsolidationPassCommand{
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RunConsolidationPassCommand) Validate() error {
	return c.guard.Validate(ErrRunConsolidationPassCommandIsNotConstructed)
}

// Scope returns the hub code the pass runs over.
func (c RunConsolidationPassCommand) Scope() string {
	return c.scope
}
