package queries

import (
	"context"
	"time"

	"ostrov/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderSummary is one row of the order listing: ledger fields plus totals
// derived from the item lines.
type OrderSummary struct {
	ID                  kernel.UUID
	ExternalID          string
	HubCode             string
	Status              string
	RecipientName       string
	RecipientPostalCode string
	GroupID             *kernel.UUID
	TotalAmountKopecks  int64
	TotalWeightGrams    int
	CreatedAt           time.Time
}

// GetOrdersQueryResponse is a listing page with the unfiltered total for
// pagination.
type GetOrdersQueryResponse struct {
	Total  int64
	Orders []OrderSummary
}

// GetOrdersQueryHandler reads order listing pages straight from the
// database, bypassing the aggregates.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results are newest first; the total
// counts every order matching the filters, not just the page.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	where := "WHERE (? = '' OR o.status = ?) AND (? = '' OR o.hub_code = ?)"
	filters := []any{query.StatusFilter(), query.StatusFilter(), query.HubFilter(), query.HubFilter()}

	var total int64
	if err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM orders o "+where, filters...,
	).Scan(&total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	args := append(filters, query.PageSize(), (query.Page()-1)*query.PageSize())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.external_id,
			o.hub_code,
			o.status,
			o.recipient_name,
			o.recipient_postal_code,
			o.group_id,
			COALESCE(SUM(i.quantity * i.price_kopecks), 0),
			COALESCE(SUM(i.quantity * i.weight_grams), 0),
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		`+where+`
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0, query.PageSize())
	for rows.Next() {
		var (
			summary OrderSummary
			id      uuid.UUID
			groupID uuid.NullUUID
		)
		if err = rows.Scan(&id, &summary.ExternalID, &summary.HubCode, &summary.Status,
			&summary.RecipientName, &summary.RecipientPostalCode, &groupID,
			&summary.TotalAmountKopecks, &summary.TotalWeightGrams, &summary.CreatedAt); err != nil {
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID

		if groupID.Valid {
			memberOf, gidErr := kernel.UUIDFromBytes(groupID.UUID[:])
			if gidErr != nil {
				return GetOrdersQueryResponse{}, gidErr
			}
			summary.GroupID = &memberOf
		}
		orders = append(orders, summary)
	}
	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{Total: total, Orders: orders}, nil
}
