package http

import "time"

// Error is the uniform error body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRecipient is the recipient block of an intake request.
type NewOrderRecipient struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// NewOrderItem is one item line of an intake request.
type NewOrderItem struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceKopecks int64  `json:"price_kopecks"`
	WeightGrams  int    `json:"weight_grams"`
}

// NewOrder is the intake request body.
type NewOrder struct {
	ExternalID string            `json:"external_id"`
	Recipient  NewOrderRecipient `json:"recipient"`
	Items      []NewOrderItem    `json:"items"`
}

// OrderCreated is the intake response body.
type OrderCreated struct {
	ID string `json:"id"`
}

// StatusChange is the body of order and group status change requests.
type StatusChange struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// ForceDispatch is the body of a forced dispatch request.
type ForceDispatch struct {
	Note string `json:"note"`
}

// OrderSummary is one row of the order listing response.
type OrderSummary struct {
	ID                  string    `json:"id"`
	ExternalID          string    `json:"external_id"`
	HubCode             string    `json:"hub_code"`
	Status              string    `json:"status"`
	RecipientName       string    `json:"recipient_name"`
	RecipientPostalCode string    `json:"recipient_postal_code"`
	GroupID             *string   `json:"group_id,omitempty"`
	TotalAmountKopecks  int64     `json:"total_amount_kopecks"`
	TotalWeightGrams    int       `json:"total_weight_grams"`
	CreatedAt           time.Time `json:"created_at"`
}

// OrderListing is the paginated order listing response.
type OrderListing struct {
	Total  int64          `json:"total"`
	Orders []OrderSummary `json:"orders"`
}

// GroupSummary is one row of the group listing response.
type GroupSummary struct {
	ID               string     `json:"id"`
	Number           string     `json:"number"`
	HubCode          string     `json:"hub_code"`
	HubName          string     `json:"hub_name"`
	TransportType    string     `json:"transport_type"`
	Status           string     `json:"status"`
	OrdersCount      int        `json:"orders_count"`
	TotalWeightGrams int        `json:"total_weight_grams"`
	SavingsKopecks   *int64     `json:"savings_kopecks,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	DispatchedAt     *time.Time `json:"dispatched_at,omitempty"`
}

// GroupListing is the paginated group listing response.
type GroupListing struct {
	Total  int64          `json:"total"`
	Groups []GroupSummary `json:"groups"`
}

// GroupMember is one member row of the group detail response.
type GroupMember struct {
	OrderID             string `json:"order_id"`
	ExternalID          string `json:"external_id"`
	Status              string `json:"status"`
	RecipientPostalCode string `json:"recipient_postal_code"`
	WeightGrams         int    `json:"weight_grams"`
	PublicKopecks       *int64 `json:"public_kopecks,omitempty"`
	ContractKopecks     *int64 `json:"contract_kopecks,omitempty"`
	SavingsKopecks      *int64 `json:"savings_kopecks,omitempty"`
}

// GroupDetail is the group detail response: ledger fields, economics and
// members in join order.
type GroupDetail struct {
	ID                  string        `json:"id"`
	Number              string        `json:"number"`
	HubCode             string        `json:"hub_code"`
	HubName             string        `json:"hub_name"`
	TransportType       string        `json:"transport_type"`
	Status              string        `json:"status"`
	TotalWeightGrams    int           `json:"total_weight_grams"`
	PublicCostKopecks   *int64        `json:"public_cost_kopecks,omitempty"`
	ContractCostKopecks *int64        `json:"contract_cost_kopecks,omitempty"`
	SavingsKopecks      *int64        `json:"savings_kopecks,omitempty"`
	SavingsPercent      *float64      `json:"savings_percent,omitempty"`
	OperatorNote        string        `json:"operator_note,omitempty"`
	ScheduledAt         *time.Time    `json:"scheduled_at,omitempty"`
	DispatchedAt        *time.Time    `json:"dispatched_at,omitempty"`
	ArrivedAtHubAt      *time.Time    `json:"arrived_at_hub_at,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	Members             []GroupMember `json:"members"`
}

// TariffComparison is the single-parcel tariff comparison response.
type TariffComparison struct {
	PublicCostKopecks   int64   `json:"public_cost_kopecks"`
	ContractCostKopecks int64   `json:"contract_cost_kopecks"`
	SavingsKopecks      int64   `json:"savings_kopecks"`
	SavingsPercent      float64 `json:"savings_percent"`
	MinDays             int     `json:"min_days"`
	MaxDays             int     `json:"max_days"`
}

// GroupingSettings is the effective settings response.
type GroupingSettings struct {
	Scope                 string    `json:"scope"`
	Source                string    `json:"source"`
	Enabled               bool      `json:"enabled"`
	MaxWaitHours          int       `json:"max_wait_hours"`
	MinGroupSize          int       `json:"min_group_size"`
	MinSavingsKopecks     int64     `json:"min_savings_kopecks"`
	PenaltyPerHourKopecks int64     `json:"penalty_per_hour_kopecks"`
	WorkerIntervalMinutes int       `json:"worker_interval_minutes"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// GroupingSettingsUpdate is the partial settings update body. Absent fields
// keep their current values.
type GroupingSettingsUpdate struct {
	Enabled               *bool  `json:"enabled"`
	MaxWaitHours          *int   `json:"max_wait_hours"`
	MinGroupSize          *int   `json:"min_group_size"`
	MinSavingsKopecks     *int64 `json:"min_savings_kopecks"`
	PenaltyPerHourKopecks *int64 `json:"penalty_per_hour_kopecks"`
	WorkerIntervalMinutes *int   `json:"worker_interval_minutes"`
}
