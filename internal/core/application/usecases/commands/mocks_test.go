package commands_test

import (
	"context"
	"time"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/model/settings"
	"ostrov/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetEligibleByHub(ctx context.Context, hubCode string) ([]*order.Order, error) {
	args := m.Called(ctx, hubCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByGroupID(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockGroupRepository struct{ mock.Mock }

func (m *MockGroupRepository) Add(ctx context.Context, g *group.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(ctx context.Context, g *group.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Get(ctx context.Context, id kernel.UUID) (*group.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupRepository) GetFormingByHub(ctx context.Context, hubCode string) (*group.Group, error) {
	args := m.Called(ctx, hubCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupRepository) CountCreatedOnDay(ctx context.Context, hubCode string, day time.Time) (int, error) {
	args := m.Called(ctx, hubCode, day)
	return args.Int(0), args.Error(1)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetForScope(ctx context.Context, scope string) (settings.GroupingSettings, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(settings.GroupingSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, record settings.GroupingSettings) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) GroupRepository() ports.GroupRepository {
	args := m.Called()
	return args.Get(0).(ports.GroupRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSettingsUoWFactory struct{ mock.Mock }

func (m *MockSettingsUoWFactory) Create() commands.SettingsUoW {
	args := m.Called()
	return args.Get(0).(commands.SettingsUoW)
}

type MockTariffProvider struct{ mock.Mock }

func (m *MockTariffProvider) GetPublicQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (ports.TariffQuote, error) {
	args := m.Called(ctx, from, to, weightGrams)
	return args.Get(0).(ports.TariffQuote), args.Error(1)
}

func (m *MockTariffProvider) GetContractQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (ports.TariffQuote, error) {
	args := m.Called(ctx, from, to, weightGrams)
	return args.Get(0).(ports.TariffQuote), args.Error(1)
}

func (m *MockTariffProvider) GetBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
