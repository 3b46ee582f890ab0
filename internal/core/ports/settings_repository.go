package ports

import (
	"context"

	"ostrov/internal/core/domain/model/settings"
)

// SettingsRepository defines the persistence contract for grouping
// settings. Settings are read fresh at the start of every scheduler pass.
type SettingsRepository interface {
	// GetForScope resolves the effective settings of a scope: the scope's
	// own record when present, otherwise the global record, otherwise the
	// built-in defaults. Never fails on a missing record.
	GetForScope(ctx context.Context, scope string) (settings.GroupingSettings, error)

	// Save upserts a settings record by scope.
	Save(ctx context.Context, record settings.GroupingSettings) error
}
