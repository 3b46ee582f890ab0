package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ostrov/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupMember is one member row of a group detail: the order's identity and
// its stamped tariff share, when economics were applied.
type GroupMember struct {
	OrderID             kernel.UUID
	ExternalID          string
	Status              string
	RecipientPostalCode string
	WeightGrams         int
	PublicKopecks       *int64
	ContractKopecks     *int64
	SavingsKopecks      *int64
}

// GetGroupQueryResponse is the full group detail: ledger fields, economics
// and members in join order.
type GetGroupQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	HubCode             string
	HubName             string
	TransportType       string
	Status              string
	TotalWeightGrams    int
	PublicCostKopecks   *int64
	ContractCostKopecks *int64
	SavingsKopecks      *int64
	SavingsPercent      *float64
	OperatorNote        string
	ScheduledAt         *time.Time
	DispatchedAt        *time.Time
	ArrivedAtHubAt      *time.Time
	CreatedAt           time.Time
	Members             []GroupMember
}

// GetGroupQueryHandler reads one group detail straight from the database.
type GetGroupQueryHandler struct {
	db *gorm.DB
}

// NewGetGroupQueryHandler creates a handler for group detail queries.
func NewGetGroupQueryHandler(db *gorm.DB) GetGroupQueryHandler {
	return GetGroupQueryHandler{db: db}
}

// Handle executes the detail query. Members are ordered by the time they
// joined the group. Returns ErrGroupNotFound when the id matches nothing.
func (h GetGroupQueryHandler) Handle(ctx context.Context, query GetGroupQuery) (GetGroupQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGroupQueryResponse{}, err
	}

	response, err := h.readGroup(ctx, query.GroupID())
	if err != nil {
		return GetGroupQueryResponse{}, err
	}

	members, err := h.readMembers(ctx, query.GroupID())
	if err != nil {
		return GetGroupQueryResponse{}, err
	}
	response.Members = members
	return response, nil
}

func (h GetGroupQueryHandler) readGroup(ctx context.Context, groupID kernel.UUID) (GetGroupQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			hub_code,
			hub_name,
			transport_type,
			status,
			total_weight_grams,
			public_cost_kopecks,
			contract_cost_kopecks,
			savings_kopecks,
			savings_percent,
			operator_note,
			scheduled_at,
			dispatched_at,
			arrived_at_hub_at,
			created_at
		FROM order_groups
		WHERE id = ?
	`, groupID.String()).Row()

	var (
		response       GetGroupQueryResponse
		id             uuid.UUID
		publicCost     sql.NullInt64
		contractCost   sql.NullInt64
		savings        sql.NullInt64
		savingsPercent sql.NullFloat64
		scheduledAt    sql.NullTime
		dispatchedAt   sql.NullTime
		arrivedAtHubAt sql.NullTime
	)
	err := row.Scan(&id, &response.Number, &response.HubCode, &response.HubName,
		&response.TransportType, &response.Status, &response.TotalWeightGrams,
		&publicCost, &contractCost, &savings, &savingsPercent, &response.OperatorNote,
		&scheduledAt, &dispatchedAt, &arrivedAtHubAt, &response.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetGroupQueryResponse{}, ErrGroupNotFound
	}
	if err != nil {
		return GetGroupQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetGroupQueryResponse{}, err
	}
	if publicCost.Valid {
		response.PublicCostKopecks = &publicCost.Int64
	}
	if contractCost.Valid {
		response.ContractCostKopecks = &contractCost.Int64
	}
	if savings.Valid {
		response.SavingsKopecks = &savings.Int64
	}
	if savingsPercent.Valid {
		response.SavingsPercent = &savingsPercent.Float64
	}
	if scheduledAt.Valid {
		response.ScheduledAt = &scheduledAt.Time
	}
	if dispatchedAt.Valid {
		response.DispatchedAt = &dispatchedAt.Time
	}
	if arrivedAtHubAt.Valid {
		response.ArrivedAtHubAt = &arrivedAtHubAt.Time
	}
	return response, nil
}

func (h GetGroupQueryHandler) readMembers(ctx context.Context, groupID kernel.UUID) ([]GroupMember, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.external_id,
			o.status,
			o.recipient_postal_code,
			COALESCE(SUM(i.quantity * i.weight_grams), 0),
			o.tariff_public_kopecks,
			o.tariff_contract_kopecks,
			o.tariff_savings_kopecks
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.group_id = ?
		GROUP BY o.id
		ORDER BY o.grouped_at, o.id
	`, groupID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]GroupMember, 0)
	for rows.Next() {
		var (
			member   GroupMember
			id       uuid.UUID
			public   sql.NullInt64
			contract sql.NullInt64
			savings  sql.NullInt64
		)
		if err = rows.Scan(&id, &member.ExternalID, &member.Status,
			&member.RecipientPostalCode, &member.WeightGrams,
			&public, &contract, &savings); err != nil {
			return nil, err
		}

		member.OrderID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if public.Valid {
			member.PublicKopecks = &public.Int64
		}
		if contract.Valid {
			member.ContractKopecks = &contract.Int64
		}
		if savings.Valid {
			member.SavingsKopecks = &savings.Int64
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}
