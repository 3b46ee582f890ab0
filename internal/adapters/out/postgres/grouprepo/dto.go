// Package grouprepo persists shipment group aggregates: the group ledger.
// Membership is not duplicated here; member ids live on the orders table as
// group references and are reloaded in join order when a group is read.
package grouprepo

import (
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GroupDTO is the database row for a group aggregate.
type GroupDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number              string    `gorm:"uniqueIndex"`
	HubCode             string    `gorm:"index"`
	HubName             string
	TransportType       string
	Status              string `gorm:"index"`
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
	UpdatedAt           time.Time
}

// TableName overrides GORM's default naming to use "order_groups".
func (GroupDTO) TableName() string {
	return "order_groups"
}

func fromDomain(aggregate *group.Group) GroupDTO {
	dto := GroupDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		HubCode:          aggregate.HubCode(),
		HubName:          aggregate.HubName(),
		TransportType:    aggregate.TransportType(),
		Status:           aggregate.Status().String(),
		TotalWeightGrams: aggregate.TotalWeightGrams(),
		OperatorNote:     aggregate.OperatorNote(),
		ScheduledAt:      aggregate.ScheduledAt(),
		DispatchedAt:     aggregate.DispatchedAt(),
		ArrivedAtHubAt:   aggregate.ArrivedAtHubAt(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}

	if economics := aggregate.Economics(); economics != nil {
		public := economics.PublicCostKopecks()
		savings := economics.SavingsKopecks()
		percent := economics.SavingsPercent()
		dto.PublicCostKopecks = &public
		dto.ContractCostKopecks = economics.ContractCostKopecks()
		dto.SavingsKopecks = &savings
		dto.SavingsPercent = &percent
	}

	return dto
}

func toDomain(dto GroupDTO, memberIDs []kernel.UUID) (*group.Group, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := group.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var economics *group.Economics
	if dto.PublicCostKopecks != nil {
		stamped, econErr := group.NewEconomics(*dto.PublicCostKopecks,
			dto.ContractCostKopecks, *dto.SavingsKopecks, *dto.SavingsPercent)
		if econErr != nil {
			return nil, econErr
		}
		economics = &stamped
	}

	return group.RestoreGroup(id, dto.Number, dto.HubCode, dto.HubName,
		dto.TransportType, status, memberIDs, dto.TotalWeightGrams, economics,
		dto.OperatorNote, dto.ScheduledAt, dto.DispatchedAt, dto.ArrivedAtHubAt,
		dto.CreatedAt, dto.UpdatedAt)
}
