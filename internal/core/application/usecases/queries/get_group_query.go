package queries

import (
	"errors"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/guard"
)

var (
	ErrGetGroupQueryIsNotConstructed = errors.New(
		"GetGroupQuery must be created via NewGetGroupQuery constructor",
	)
	ErrGroupNotFound = errors.New("group not found")
)

// GetGroupQuery retrieves one group with its economics and member rows.
type GetGroupQuery struct {
	groupID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetGroupQuery creates a validated group detail query.
func NewGetGroupQuery(groupID kernel.UUID) (GetGroupQuery, error) {
	if err := groupID.Validate(); err != nil {
		return GetGroupQuery{}, err
	}

	return GetGroupQuery{
		groupID: groupID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetGroupQuery) Validate() error {
	return q.guard.Validate(ErrGetGroupQueryIsNotConstructed)
}

// GroupID returns the identifier of the requested group.
func (q GetGroupQuery) GroupID() kernel.UUID {
	return q.groupID
}
