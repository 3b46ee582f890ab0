package queries

import (
	"errors"

	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var ErrGetGroupingSettingsQueryIsNotConstructed = errors.New(
	"GetGroupingSettingsQuery must be created via NewGetGroupingSettingsQuery constructor",
)

// GetGroupingSettingsQuery retrieves the effective grouping settings for a
// scope: the scope's own record, the global record, or the built-in
// defaults, in that order.
type GetGroupingSettingsQuery struct {
	scope string

	guard guard.ConstructorGuard
}

// NewGetGroupingSettingsQuery creates a validated settings query.
func NewGetGroupingSettingsQuery(scope string) (GetGroupingSettingsQuery, error) {
	if scope == "" {
		return GetGroupingSettingsQuery{}, errs.NewValueIsRequiredError("settings scope")
	}

	return GetGroupingSettingsQuery{
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetGroupingSettingsQuery) Validate() error {
	return q.guard.Validate(ErrGetGroupingSettingsQueryIsNotConstructed)
}

// Scope returns the requested settings scope.
func (q GetGroupingSettingsQuery) Scope() string {
	return q.scope
}
