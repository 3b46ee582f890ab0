package queries

import (
	"context"
	"database/sql"
	"time"

	"ostrov/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupSummary is one row of the group listing.
type GroupSummary struct {
	ID               kernel.UUID
	Number           string
	HubCode          string
	HubName          string
	TransportType    string
	Status           string
	OrdersCount      int
	TotalWeightGrams int
	SavingsKopecks   *int64
	CreatedAt        time.Time
	DispatchedAt     *time.Time
}

// GetGroupsQueryResponse is a listing page with the unfiltered total for
// pagination.
type GetGroupsQueryResponse struct {
	Total  int64
	Groups []GroupSummary
}

// GetGroupsQueryHandler reads group listing pages straight from the
// database.
type GetGroupsQueryHandler struct {
	db *gorm.DB
}

// NewGetGroupsQueryHandler creates a handler for group listing queries.
func NewGetGroupsQueryHandler(db *gorm.DB) GetGroupsQueryHandler {
	return GetGroupsQueryHandler{db: db}
}

// Handle executes the listing query, newest groups first. The member count
// comes from the orders table, so a forming group shrinks in the listing as
// soon as an order is cancelled out of it.
func (h GetGroupsQueryHandler) Handle(ctx context.Context, query GetGroupsQuery) (GetGroupsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGroupsQueryResponse{}, err
	}

	where := "WHERE (? = '' OR g.status = ?) AND (? = '' OR g.hub_code = ?)"
	filters := []any{query.StatusFilter(), query.StatusFilter(), query.HubFilter(), query.HubFilter()}

	var total int64
	if err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM order_groups g "+where, filters...,
	).Scan(&total).Error; err != nil {
		return GetGroupsQueryResponse{}, err
	}

	args := append(filters, query.PageSize(), (query.Page()-1)*query.PageSize())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			g.id,
			g.number,
			g.hub_code,
			g.hub_name,
			g.transport_type,
			g.status,
			(SELECT COUNT(*) FROM orders o WHERE o.group_id = g.id),
			g.total_weight_grams,
			g.savings_kopecks,
			g.created_at,
			g.dispatched_at
		FROM order_groups g
		`+where+`
		ORDER BY g.created_at DESC, g.id
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return GetGroupsQueryResponse{}, err
	}
	defer rows.Close()

	groups := make([]GroupSummary, 0, query.PageSize())
	for rows.Next() {
		var (
			summary      GroupSummary
			id           uuid.UUID
			savings      sql.NullInt64
			dispatchedAt sql.NullTime
		)
		if err = rows.Scan(&id, &summary.Number, &summary.HubCode, &summary.HubName,
			&summary.TransportType, &summary.Status, &summary.OrdersCount,
			&summary.TotalWeightGrams, &savings, &summary.CreatedAt, &dispatchedAt); err != nil {
			return GetGroupsQueryResponse{}, err
		}

		groupID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetGroupsQueryResponse{}, idErr
		}
		summary.ID = groupID

		if savings.Valid {
			summary.SavingsKopecks = &savings.Int64
		}
		if dispatchedAt.Valid {
			summary.DispatchedAt = &dispatchedAt.Time
		}
		groups = append(groups, summary)
	}
	if err = rows.Err(); err != nil {
		return GetGroupsQueryResponse{}, err
	}

	return GetGroupsQueryResponse{Total: total, Groups: groups}, nil
}
