package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

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

// warehouseOrder builds an order sitting in received_warehouse since
// receivedAt, with a single item weighing weightGrams.
func warehouseOrder(t *testing.T, postalCode string, weightGrams int, receivedAt time.Time) *order.Order {
	t.Helper()

	code := mustPostalCode(t, postalCode)
	recipient, err := order.NewRecipient("Test Recipient", "+79160000000", "test address", code)
	require.NoError(t, err)
	item, err := order.NewItem("parcel", 1, 100000, weightGrams)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "EXT-1", "msk", recipient,
		[]order.Item{item}, receivedAt.Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.AwaitingPickup, "", receivedAt.Add(-time.Hour)))
	require.NoError(t, o.TransitionTo(order.ReceivedWarehouse, "", receivedAt))
	return o
}

func newComparator(t *testing.T, provider ports.TariffProvider) *services.TariffComparator {
	t.Helper()

	comparator, err := services.NewTariffComparator(provider, mustPostalCode(t, "238311"))
	require.NoError(t, err)
	return comparator
}

func TestTariffComparator_Compare(t *testing.T) {
	origin := mustPostalCode(t, "238311")
	dest := mustPostalCode(t, "101000")

	t.Run("derives savings from both quotes", func(t *testing.T) {
		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, dest, 1500).
			Return(ports.TariffQuote{TotalKopecks: 45000, MinDays: 3, MaxDays: 6}, nil).Once()
		provider.On("GetContractQuote", mock.Anything, origin, dest, 1500).
			Return(ports.TariffQuote{TotalKopecks: 30000, MinDays: 4, MaxDays: 7}, nil).Once()

		result, err := newComparator(t, provider).Compare(context.Background(), dest, 1500)

		require.NoError(t, err)
		assert.Equal(t, int64(45000), result.PublicCostKopecks)
		assert.Equal(t, int64(30000), result.ContractCostKopecks)
		assert.Equal(t, int64(15000), result.SavingsKopecks)
		assert.InDelta(t, 33.3, result.SavingsPercent, 0.001)
		assert.Equal(t, 4, result.MinDays)
		assert.Equal(t, 7, result.MaxDays)
		provider.AssertExpectations(t)
	})

	t.Run("wraps provider failures as unavailable", func(t *testing.T) {
		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, dest, 1500).
			Return(ports.TariffQuote{}, errors.New("timeout")).Once()

		_, err := newComparator(t, provider).Compare(context.Background(), dest, 1500)

		require.ErrorIs(t, err, services.ErrTariffUnavailable)
	})

	t.Run("passes invalid route through unchanged", func(t *testing.T) {
		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, dest, 1500).
			Return(ports.TariffQuote{TotalKopecks: 45000}, nil).Once()
		provider.On("GetContractQuote", mock.Anything, origin, dest, 1500).
			Return(ports.TariffQuote{}, services.ErrInvalidRoute).Once()

		_, err := newComparator(t, provider).Compare(context.Background(), dest, 1500)

		require.ErrorIs(t, err, services.ErrInvalidRoute)
		assert.NotErrorIs(t, err, services.ErrTariffUnavailable)
	})
}

func TestTariffComparator_CompareGroup(t *testing.T) {
	origin := mustPostalCode(t, "238311")

	t.Run("sums public quotes and contracts the total weight", func(t *testing.T) {
		members := []*order.Order{
			warehouseOrder(t, "101000", 1000, testNow),
			warehouseOrder(t, "101000", 500, testNow),
			warehouseOrder(t, "190000", 700, testNow),
		}

		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, mustPostalCode(t, "101000"), 1000).
			Return(ports.TariffQuote{TotalKopecks: 40000}, nil).Once()
		provider.On("GetPublicQuote", mock.Anything, origin, mustPostalCode(t, "101000"), 500).
			Return(ports.TariffQuote{TotalKopecks: 25000}, nil).Once()
		provider.On("GetPublicQuote", mock.Anything, origin, mustPostalCode(t, "190000"), 700).
			Return(ports.TariffQuote{TotalKopecks: 30000}, nil).Once()
		// The contract route targets the most frequent index: 101000.
		provider.On("GetContractQuote", mock.Anything, origin, mustPostalCode(t, "101000"), 2200).
			Return(ports.TariffQuote{TotalKopecks: 60000, MinDays: 4, MaxDays: 8}, nil).Once()

		result, err := newComparator(t, provider).CompareGroup(context.Background(), members)

		require.NoError(t, err)
		assert.Equal(t, int64(95000), result.PublicCostKopecks)
		assert.Equal(t, int64(60000), result.ContractCostKopecks)
		assert.Equal(t, int64(35000), result.SavingsKopecks)
		assert.InDelta(t, 36.8, result.SavingsPercent, 0.001)
		assert.Equal(t, []int64{40000, 25000, 30000}, result.PublicPerOrderKopecks)
		assert.Equal(t, "101000", result.DestinationPostalCode.String())
		assert.Equal(t, 2200, result.TotalWeightGrams)
		provider.AssertExpectations(t)
	})

	t.Run("breaks destination ties by join order", func(t *testing.T) {
		members := []*order.Order{
			warehouseOrder(t, "190000", 500, testNow),
			warehouseOrder(t, "101000", 500, testNow),
		}

		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, mock.Anything, 500).
			Return(ports.TariffQuote{TotalKopecks: 20000}, nil).Twice()
		provider.On("GetContractQuote", mock.Anything, origin, mustPostalCode(t, "190000"), 1000).
			Return(ports.TariffQuote{TotalKopecks: 30000}, nil).Once()

		_, err := newComparator(t, provider).CompareGroup(context.Background(), members)

		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("fails on empty member set", func(t *testing.T) {
		provider := new(MockTariffProvider)

		_, err := newComparator(t, provider).CompareGroup(context.Background(), nil)

		require.Error(t, err)
	})

	t.Run("propagates unavailable provider", func(t *testing.T) {
		members := []*order.Order{warehouseOrder(t, "101000", 1000, testNow)}

		provider := new(MockTariffProvider)
		provider.On("GetPublicQuote", mock.Anything, origin, mock.Anything, 1000).
			Return(ports.TariffQuote{}, errors.New("connection refused")).Once()

		_, err := newComparator(t, provider).CompareGroup(context.Background(), members)

		require.ErrorIs(t, err, services.ErrTariffUnavailable)
	})
}

func TestSavingsPercent(t *testing.T) {
	assert.InDelta(t, 33.3, services.SavingsPercent(15000, 45000), 0.001)
	assert.InDelta(t, 50.0, services.SavingsPercent(500, 1000), 0.001)
	assert.Zero(t, services.SavingsPercent(100, 0))
	assert.InDelta(t, -10.0, services.SavingsPercent(-100, 1000), 0.001)
}
