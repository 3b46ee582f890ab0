package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ostrov/internal/core/domain/model/settings"

	"gorm.io/gorm"
)

// GetGroupingSettingsQueryResponse is the effective settings snapshot for a
// scope. Source tells where the values came from: the scope's own record,
// the global record or the built-in defaults.
type GetGroupingSettingsQueryResponse struct {
	Scope                 string
	Source                string
	Enabled               bool
	MaxWaitHours          int
	MinGroupSize          int
	MinSavingsKopecks     int64
	PenaltyPerHourKopecks int64
	WorkerIntervalMinutes int
	UpdatedAt             time.Time
}

// GetGroupingSettingsQueryHandler reads the effective settings straight
// from the database, resolving the scope → global → defaults fallback the
// same way the scheduler does.
type GetGroupingSettingsQueryHandler struct {
	db *gorm.DB
}

// NewGetGroupingSettingsQueryHandler creates a handler for settings
// queries.
func NewGetGroupingSettingsQueryHandler(db *gorm.DB) GetGroupingSettingsQueryHandler {
	return GetGroupingSettingsQueryHandler{db: db}
}

// Handle executes the settings query. It never fails on a missing record;
// the defaults are the final fallback.
func (h GetGroupingSettingsQueryHandler) Handle(ctx context.Context,
	query GetGroupingSettingsQuery) (GetGroupingSettingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGroupingSettingsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			scope,
			enabled,
			max_wait_hours,
			min_group_size,
			min_savings_kopecks,
			penalty_per_hour_kopecks,
			worker_interval_minutes,
			updated_at
		FROM grouping_settings
		WHERE scope IN (?, ?)
		ORDER BY CASE WHEN scope = ? THEN 0 ELSE 1 END
		LIMIT 1
	`, query.Scope(), settings.ScopeGlobal, query.Scope()).Row()

	var response GetGroupingSettingsQueryResponse
	var recordScope string
	err := row.Scan(&recordScope, &response.Enabled, &response.MaxWaitHours,
		&response.MinGroupSize, &response.MinSavingsKopecks,
		&response.PenaltyPerHourKopecks, &response.WorkerIntervalMinutes,
		&response.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := settings.DefaultGroupingSettings(query.Scope(), time.Now().UTC())
		return GetGroupingSettingsQueryResponse{
			Scope:                 query.Scope(),
			Source:                "defaults",
			Enabled:               defaults.Enabled(),
			MaxWaitHours:          defaults.MaxWaitHours(),
			MinGroupSize:          defaults.MinGroupSize(),
			MinSavingsKopecks:     defaults.MinSavingsKopecks(),
			PenaltyPerHourKopecks: defaults.PenaltyPerHourKopecks(),
			WorkerIntervalMinutes: defaults.WorkerIntervalMinutes(),
			UpdatedAt:             defaults.UpdatedAt(),
		}, nil
	}
	if err != nil {
		return GetGroupingSettingsQueryResponse{}, err
	}

	response.Scope = query.Scope()
	response.Source = "scope"
	if recordScope != query.Scope() {
		response.Source = "global"
	}
	return response, nil
}
