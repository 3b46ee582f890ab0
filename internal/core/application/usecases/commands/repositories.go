// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"ostrov/internal/core/ports"
)

var (
	// ErrScopeBusy is returned when a consolidation pass finds another
	// pass already running for the same scope. The caller retries on the
	// next cadence tick.
	ErrScopeBusy = errors.New("another consolidation pass is running for the scope")

	// ErrGroupingAborted is returned when group formation fails part-way:
	// the whole pass rolls back and no member is left half-joined.
	ErrGroupingAborted = errors.New("group formation aborted")
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// GroupRepoFactory provides access to the group repository within a
	// transaction.
	GroupRepoFactory interface {
		GroupRepository() ports.GroupRepository
	}

	// SettingsRepoFactory provides access to the settings repository
	// within a transaction.
	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettingsUoW manages transactions for settings-only operations.
	SettingsUoW interface {
		TxManager
		SettingsRepoFactory
	}

	// SettingsUoWFactory creates new settings unit of work instances.
	SettingsUoWFactory interface {
		Create() SettingsUoW
	}

	// UoW manages transactions across the order and group ledgers plus
	// the settings store. Used by the consolidation pass and the group
	// lifecycle commands, which touch several aggregates atomically.
	UoW interface {
		TxManager
		OrderRepoFactory
		GroupRepoFactory
		SettingsRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
