package commands_test

import (
	"testing"
	"time"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type arrivalHarness struct {
	groupRepo *MockGroupRepository
	handler   commands.MarkGroupArrivedCommandHandler
}

func newArrivalHarness(t *testing.T) *arrivalHarness {
	t.Helper()

	h := &arrivalHarness{
		groupRepo: new(MockGroupRepository),
	}

	uow := new(MockUoW)
	uow.On("GroupRepository").Return(h.groupRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	h.handler = commands.NewMarkGroupArrivedCommandHandler(factory)
	return h
}

func TestMarkGroupArrivedCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	h := newArrivalHarness(t)
	now := time.Now().UTC()
	members := []*order.Order{warehouseOrderAt(t, now.Add(-time.Hour))}
	aggregate := formingGroupWith(t, members, now)
	require.NoError(t, aggregate.Dispatch(true, "", now))

	cmd, err := commands.NewMarkGroupArrivedCommand(aggregate.ID())
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	h.groupRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	err = h.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, aggregate.ArrivedAtHubAt())
	h.groupRepo.AssertExpectations(t)
}

func TestMarkGroupArrivedCommandHandler_Handle_RefusesUndispatchedGroup(t *testing.T) {
	ctx := t.Context()
	h := newArrivalHarness(t)
	now := time.Now().UTC()
	members := []*order.Order{warehouseOrderAt(t, now.Add(-time.Hour))}
	aggregate := formingGroupWith(t, members, now)

	cmd, err := commands.NewMarkGroupArrivedCommand(aggregate.ID())
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	err = h.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Nil(t, aggregate.ArrivedAtHubAt())
	h.groupRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkGroupArrivedCommandHandler_Handle_UnknownGroup(t *testing.T) {
	ctx := t.Context()
	h := newArrivalHarness(t)
	id := kernel.NewUUID()

	cmd, err := commands.NewMarkGroupArrivedCommand(id)
	require.NoError(t, err)

	h.groupRepo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("group", id.String())).Once()

	err = h.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMarkGroupArrivedCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := newArrivalHarness(t)
	err := h.handler.Handle(ctx, commands.MarkGroupArrivedCommand{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMarkGroupArrivedCommandIsNotConstructed)
}
