// Package settingsrepo persists grouping settings per scope.
package settingsrepo

import (
	"time"

	"ostrov/internal/core/domain/model/settings"
)

// SettingsDTO is the database row for one scope's grouping settings.
type SettingsDTO struct {
	Scope                 string `gorm:"primaryKey"`
	Enabled               bool
	MaxWaitHours          int
	MinGroupSize          int
	MinSavingsKopecks     int64
	PenaltyPerHourKopecks int64
	WorkerIntervalMinutes int
	UpdatedAt             time.Time
}

// TableName overrides GORM's default naming to use "grouping_settings".
func (SettingsDTO) TableName() string {
	return "grouping_settings"
}

func fromDomain(record settings.GroupingSettings) SettingsDTO {
	return SettingsDTO{
		Scope:                 record.Scope(),
		Enabled:               record.Enabled(),
		MaxWaitHours:          record.MaxWaitHours(),
		MinGroupSize:          record.MinGroupSize(),
		MinSavingsKopecks:     record.MinSavingsKopecks(),
		PenaltyPerHourKopecks: record.PenaltyPerHourKopecks(),
		WorkerIntervalMinutes: record.WorkerIntervalMinutes(),
		UpdatedAt:             record.UpdatedAt(),
	}
}

func toDomain(dto SettingsDTO) (settings.GroupingSettings, error) {
	return settings.NewGroupingSettings(dto.Scope, dto.Enabled, dto.MaxWaitHours,
		dto.MinGroupSize, dto.MinSavingsKopecks, dto.PenaltyPerHourKopecks,
		dto.WorkerIntervalMinutes, dto.UpdatedAt)
}
