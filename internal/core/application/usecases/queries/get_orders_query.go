package queries

import (
	"errors"

	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// MaxPageSize caps a single listing page.
const MaxPageSize = 100

// GetOrdersQuery retrieves a page of the order ledger, optionally filtered
// by status and consolidation hub.
type GetOrdersQuery struct {
	page         int
	pageSize     int
	statusFilter string
	hubFilter    string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a validated listing query. Pages are 1-based;
// empty filters match everything. A non-empty status filter must name a
// known order status.
func NewGetOrdersQuery(page, pageSize int, statusFilter, hubFilter string) (GetOrdersQuery, error) {
	if page < 1 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("page")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("page size")
	}
	if statusFilter != "" {
		if _, err := order.StatusFromString(statusFilter); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		page:         page,
		pageSize:     pageSize,
		statusFilter: statusFilter,
		hubFilter:    hubFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetOrdersQuery) PageSize() int {
	return q.pageSize
}

// StatusFilter returns the status filter, empty for all statuses.
func (q GetOrdersQuery) StatusFilter() string {
	return q.statusFilter
}

// HubFilter returns the hub code filter, empty for all hubs.
func (q GetOrdersQuery) HubFilter() string {
	return q.hubFilter
}
