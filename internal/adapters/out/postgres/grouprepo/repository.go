package grouprepo

import (
	"context"
	"errors"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGroupRepository implements ports.GroupRepository using GORM.
type GormGroupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormGroupRepository creates a new GORM group repository.
func NewGormGroupRepository(db *gorm.DB, tracker aggregateTracker) *GormGroupRepository {
	return &GormGroupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new group to the database.
func (r *GormGroupRepository) Add(ctx context.Context, aggregate *group.Group) error {
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

// Update saves an existing group. Save writes every column so nullable
// economics and lifecycle timestamps round-trip exactly.
func (r *GormGroupRepository) Update(ctx context.Context, aggregate *group.Group) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a group by ID with its member ids in join order.
func (r *GormGroupRepository) Get(ctx context.Context, id kernel.UUID) (*group.Group, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GroupDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("group", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetFormingByHub retrieves the group currently forming for a hub, nil when
// none is open.
func (r *GormGroupRepository) GetFormingByHub(ctx context.Context, hubCode string) (*group.Group, error) {
	var dto GroupDTO
	err := r.db.WithContext(ctx).
		Where("hub_code = ? AND status = ?", hubCode, group.Forming.String()).
		Order("created_at").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.restore(ctx, dto)
}

// CountCreatedOnDay returns how many groups were opened for the hub on the
// UTC calendar day of the given instant.
func (r *GormGroupRepository) CountCreatedOnDay(ctx context.Context, hubCode string, day time.Time) (int, error) {
	utc := day.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Model(&GroupDTO{}).
		Where("hub_code = ? AND created_at >= ? AND created_at < ?", hubCode, start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Delete removes a group row. Member references are cleared by the caller
// before the group is dropped.
func (r *GormGroupRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&GroupDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("group", id.String())
	}
	return nil
}

// restore reloads the member ids from the orders table and rebuilds the
// aggregate. Members come back in the order they joined.
func (r *GormGroupRepository) restore(ctx context.Context, dto GroupDTO) (*group.Group, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("orders").
		Where("group_id = ?", dto.ID).
		Order("grouped_at, id").
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		memberID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		memberIDs = append(memberIDs, memberID)
	}

	return toDomain(dto, memberIDs)
}
