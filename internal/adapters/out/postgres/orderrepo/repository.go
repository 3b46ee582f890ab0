package orderrepo

import (
	"context"
	"errors"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and intake history entry. A
// duplicate external id violates the unique index and fails the insert.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Save writes every column, so clearing the
// group reference on cancellation reaches the database; association saves
// upsert item and history rows by their composite keys.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items and history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEligibleByHub retrieves the grouping pool of a hub: orders at the
// warehouse with no group, oldest arrival first.
func (r *GormOrderRepository) GetEligibleByHub(ctx context.Context, hubCode string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("hub_code = ? AND status = ? AND group_id IS NULL",
			hubCode, order.ReceivedWarehouse.String()).
		Order("warehouse_received_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// GetByGroupID retrieves the members of a group in join order.
func (r *GormOrderRepository) GetByGroupID(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("group_id = ?", groupID.Bytes()).
		Order("grouped_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

func (r *GormOrderRepository) toAggregates(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
