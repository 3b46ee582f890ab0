// Package orderrepo persists order aggregates: the parcel ledger. Orders
// are stored with their item lines and full status history; the mapping
// rebuilds aggregates through RestoreOrder so invariants hold on every
// read.
package orderrepo

import (
	"time"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. The external id is
// unique per shop, so a duplicate submission fails at intake.
type OrderDTO struct {
	ID                    uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ExternalID            string       `gorm:"uniqueIndex"`
	HubCode               string       `gorm:"index"`
	Recipient             RecipientDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	Status                string       `gorm:"index"`
	GroupID               *uuid.UUID   `gorm:"type:uuid;index"`
	TariffPublicKopecks   *int64
	TariffContractKopecks *int64
	TariffSavingsKopecks  *int64
	TariffSavingsPercent  *float64
	WarehouseReceivedAt   *time.Time
	GroupedAt             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Items   []ItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO is the embedded recipient block within the order row.
type RecipientDTO struct {
	Name       string
	Phone      string
	Address    string
	PostalCode string `gorm:"index"`
}

// ItemDTO is one item line of an order. The sequence number is part of the
// key so association saves upsert instead of duplicating lines.
type ItemDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int       `gorm:"primaryKey"`
	Name         string
	Quantity     int
	PriceKopecks int64
	WeightGrams  int
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one entry of an order's status history. History only
// ever appends; the sequence number preserves order.
type StatusChangeDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	OldStatus  *string
	NewStatus  string
	Comment    string
	OccurredAt time.Time
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		ExternalID: aggregate.ExternalID(),
		HubCode:    aggregate.HubCode(),
		Recipient: RecipientDTO{
			Name:       aggregate.Recipient().Name(),
			Phone:      aggregate.Recipient().Phone(),
			Address:    aggregate.Recipient().Address(),
			PostalCode: aggregate.Recipient().PostalCode().String(),
		},
		Status:              aggregate.Status().String(),
		WarehouseReceivedAt: aggregate.WarehouseReceivedAt(),
		GroupedAt:           aggregate.GroupedAt(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}

	if groupID := aggregate.GroupID(); groupID != nil {
		raw := groupID.Bytes()
		dto.GroupID = &raw
	}

	if tariff := aggregate.Tariff(); tariff != nil {
		public := tariff.PublicKopecks()
		contract := tariff.ContractKopecks()
		savings := tariff.SavingsKopecks()
		percent := tariff.SavingsPercent()
		dto.TariffPublicKopecks = &public
		dto.TariffContractKopecks = &contract
		dto.TariffSavingsKopecks = &savings
		dto.TariffSavingsPercent = &percent
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:      dto.ID,
			Seq:          i,
			Name:         item.Name(),
			Quantity:     item.Quantity(),
			PriceKopecks: item.PriceKopecks(),
			WeightGrams:  item.WeightGrams(),
		})
	}

	for i, change := range aggregate.History() {
		entry := StatusChangeDTO{
			OrderID:    dto.ID,
			Seq:        i,
			NewStatus:  change.NewStatus().String(),
			Comment:    change.Comment(),
			OccurredAt: change.OccurredAt(),
		}
		if old := change.OldStatus(); old != nil {
			s := old.String()
			entry.OldStatus = &s
		}
		dto.History = append(dto.History, entry)
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	postalCode, err := kernel.NewPostalCode(dto.Recipient.PostalCode)
	if err != nil {
		return nil, err
	}
	recipient, err := order.NewRecipient(dto.Recipient.Name, dto.Recipient.Phone,
		dto.Recipient.Address, postalCode)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity, line.PriceKopecks, line.WeightGrams)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var groupID *kernel.UUID
	if dto.GroupID != nil {
		gID, gidErr := kernel.UUIDFromBytes((*dto.GroupID)[:])
		if gidErr != nil {
			return nil, gidErr
		}
		groupID = &gID
	}

	var tariff *order.TariffInfo
	if dto.TariffPublicKopecks != nil {
		stamped, tariffErr := order.NewTariffInfo(*dto.TariffPublicKopecks,
			*dto.TariffContractKopecks, *dto.TariffSavingsKopecks, *dto.TariffSavingsPercent)
		if tariffErr != nil {
			return nil, tariffErr
		}
		tariff = &stamped
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, entry := range dto.History {
		var oldStatus *order.Status
		if entry.OldStatus != nil {
			old, oldErr := order.StatusFromString(*entry.OldStatus)
			if oldErr != nil {
				return nil, oldErr
			}
			oldStatus = &old
		}
		newStatus, newErr := order.StatusFromString(entry.NewStatus)
		if newErr != nil {
			return nil, newErr
		}
		history = append(history, order.NewStatusChange(oldStatus, newStatus,
			entry.Comment, entry.OccurredAt))
	}

	return order.RestoreOrder(id, dto.ExternalID, dto.HubCode, recipient, items,
		status, groupID, tariff, history, dto.WarehouseReceivedAt, dto.GroupedAt,
		dto.CreatedAt, dto.UpdatedAt)
}
