package queries

import (
	"errors"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var ErrGetGroupsQueryIsNotConstructed = errors.New(
	"GetGroupsQuery must be created via NewGetGroupsQuery constructor",
)

// GetGroupsQuery retrieves a page of the group ledger, optionally filtered
// by status and hub.
type GetGroupsQuery struct {
	page         int
	pageSize     int
	statusFilter string
	hubFilter    string

	guard guard.ConstructorGuard
}

// NewGetGroupsQuery creates a validated group listing query. Pages are
// 1-based; empty filters match everything.
func NewGetGroupsQuery(page, pageSize int, statusFilter, hubFilter string) (GetGroupsQuery, error) {
	if page < 1 {
		return GetGroupsQuery{}, errs.NewValueIsInvalidError("page")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return GetGroupsQuery{}, errs.NewValueIsInvalidError("page size")
	}
	if statusFilter != "" {
		if _, err := group.StatusFromString(statusFilter); err != nil {
			return GetGroupsQuery{}, err
		}
	}

	return GetGroupsQuery{
		page:         page,
		pageSize:     pageSize,
		statusFilter: statusFilter,
		hubFilter:    hubFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetGroupsQuery) Validate() error {
	return q.guard.Validate(ErrGetGroupsQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetGroupsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetGroupsQuery) PageSize() int {
	return q.pageSize
}

// StatusFilter returns the status filter, empty for all statuses.
func (q GetGroupsQuery) StatusFilter() string {
	return q.statusFilter
}

// HubFilter returns the hub code filter, empty for all hubs.
func (q GetGroupsQuery) HubFilter() string {
	return q.hubFilter
}
