package settingsrepo

import (
	"context"
	"errors"
	"time"

	"ostrov/internal/core/domain/model/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetForScope resolves the effective settings of a scope: the scope's own
// record, the global record, or the built-in defaults, in that order. A
// missing record is not an error.
func (r *GormSettingsRepository) GetForScope(ctx context.Context, scope string) (settings.GroupingSettings, error) {
	for _, candidate := range []string{scope, settings.ScopeGlobal} {
		var dto SettingsDTO
		err := r.db.WithContext(ctx).First(&dto, "scope = ?", candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return settings.GroupingSettings{}, err
		}
		return toDomain(dto)
	}

	return settings.DefaultGroupingSettings(scope, time.Now().UTC()), nil
}

// Save upserts a settings record by scope.
func (r *GormSettingsRepository) Save(ctx context.Context, record settings.GroupingSettings) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
