package commands_test

import (
	"errors"
	"testing"
	"time"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"
	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/scopelock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type forceDispatchHarness struct {
	orderRepo *MockOrderRepository
	groupRepo *MockGroupRepository
	uow       *MockUoW
	provider  *MockTariffProvider
	handler   commands.ForceDispatchGroupCommandHandler
}

func newForceDispatchHarness(t *testing.T) *forceDispatchHarness {
	t.Helper()

	h := &forceDispatchHarness{
		orderRepo: new(MockOrderRepository),
		groupRepo: new(MockGroupRepository),
		uow:       new(MockUoW),
		provider:  new(MockTariffProvider),
	}

	h.uow.On("OrderRepository").Return(h.orderRepo)
	h.uow.On("GroupRepository").Return(h.groupRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(h.uow)

	origin, err := kernel.NewPostalCode("101000")
	require.NoError(t, err)
	comparator, err := services.NewTariffComparator(h.provider, origin)
	require.NoError(t, err)

	h.handler = commands.NewForceDispatchGroupCommandHandler(factory, comparator,
		services.NewConsolidation(), scopelock.NewRegistry())
	return h
}

func TestForceDispatchGroupCommandHandler_Handle_DispatchesBelowThresholds(t *testing.T) {
	ctx := t.Context()
	h := newForceDispatchHarness(t)
	now := time.Now().UTC()
	members := []*order.Order{warehouseOrderAt(t, now.Add(-time.Hour))}
	aggregate := formingGroupWith(t, members, now)

	cmd, err := commands.NewForceDispatchGroupCommand(aggregate.ID(), "urgent customs slot")
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Twice()
	h.uow.On("Begin", ctx).Return(nil).Once()
	h.orderRepo.On("GetByGroupID", mock.Anything, aggregate.ID()).Return(members, nil).Once()
	h.provider.On("GetPublicQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.TariffQuote{TotalKopecks: 50000}, nil).Once()
	h.provider.On("GetContractQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.TariffQuote{TotalKopecks: 30000}, nil).Once()
	h.orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	h.groupRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	h.uow.On("Commit", ctx).Return(nil).Once()
	h.uow.On("Rollback", ctx).Return(nil).Once()

	err = h.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, group.Dispatched, aggregate.Status())
	assert.Equal(t, "urgent customs slot", aggregate.OperatorNote())
	require.NotNil(t, aggregate.Economics())
	assert.Equal(t, int64(20000), aggregate.Economics().SavingsKopecks())
	assert.Equal(t, order.CustomsPresented, members[0].Status())
	h.groupRepo.AssertExpectations(t)
	h.uow.AssertExpectations(t)
}

func TestForceDispatchGroupCommandHandler_Handle_ShipsWithoutQuoteWhenProviderDown(t *testing.T) {
	ctx := t.Context()
	h := newForceDispatchHarness(t)
	now := time.Now().UTC()
	members := []*order.Order{warehouseOrderAt(t, now.Add(-time.Hour))}
	aggregate := formingGroupWith(t, members, now)

	cmd, err := commands.NewForceDispatchGroupCommand(aggregate.ID(), "ship anyway")
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Twice()
	h.uow.On("Begin", ctx).Return(nil).Once()
	h.orderRepo.On("GetByGroupID", mock.Anything, aggregate.ID()).Return(members, nil).Once()
	h.provider.On("GetPublicQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.TariffQuote{}, errors.New("provider down"))
	h.orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	h.groupRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	h.uow.On("Commit", ctx).Return(nil).Once()
	h.uow.On("Rollback", ctx).Return(nil).Once()

	err = h.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, group.Dispatched, aggregate.Status())
	assert.Nil(t, aggregate.Economics())
	assert.Nil(t, members[0].Tariff())
}

func TestForceDispatchGroupCommandHandler_Handle_RefusesAlreadyDispatchedGroup(t *testing.T) {
	ctx := t.Context()
	h := newForceDispatchHarness(t)
	now := time.Now().UTC()
	members := []*order.Order{warehouseOrderAt(t, now.Add(-time.Hour))}
	aggregate := formingGroupWith(t, members, now)
	require.NoError(t, aggregate.Dispatch(true, "", now))

	cmd, err := commands.NewForceDispatchGroupCommand(aggregate.ID(), "")
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Twice()
	h.uow.On("Begin", ctx).Return(nil).Once()
	h.orderRepo.On("GetByGroupID", mock.Anything, aggregate.ID()).Return(members, nil).Once()
	h.provider.On("GetPublicQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.TariffQuote{}, errors.New("provider down"))
	h.uow.On("Rollback", ctx).Return(nil).Once()

	err = h.handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	h.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestForceDispatchGroupCommandHandler_Handle_GroupNotFound(t *testing.T) {
	ctx := t.Context()
	h := newForceDispatchHarness(t)
	id := kernel.NewUUID()

	cmd, err := commands.NewForceDispatchGroupCommand(id, "")
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, id).Return(nil, errors.New("group not found")).Once()

	err = h.handler.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestForceDispatchGroupCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := newForceDispatchHarness(t)
	err := h.handler.Handle(ctx, commands.ForceDispatchGroupCommand{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrForceDispatchGroupCommandIsNotConstructed)
}
