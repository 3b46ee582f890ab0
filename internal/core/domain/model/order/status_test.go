package order_test

import (
	"testing"

	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Accepted:          "accepted",
		order.AwaitingPickup:    "awaiting_pickup",
		order.ReceivedWarehouse: "received_warehouse",
		order.BatchForming:      "batch_forming",
		order.CustomsPresented:  "customs_presented",
		order.CustomsCleared:    "customs_cleared",
		order.AwaitingCarrier:   "awaiting_carrier",
		order.Shipped:           "shipped",
		order.InTransit:         "in_transit",
		order.Delivered:         "delivered",
		order.Cancelled:         "cancelled",
		order.Problem:           "problem",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every defined status", func(t *testing.T) {
		for s := order.Accepted; s <= order.Problem; s++ {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("teleported")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects the unknown placeholder", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("allows the happy path end to end", func(t *testing.T) {
		path := []order.Status{
			order.Accepted, order.AwaitingPickup, order.ReceivedWarehouse,
			order.BatchForming, order.CustomsPresented, order.CustomsCleared,
			order.AwaitingCarrier, order.Shipped, order.InTransit, order.Delivered,
		}

		for i := 0; i < len(path)-1; i++ {
			assert.True(t, path[i].CanTransitionTo(path[i+1]),
				"%s -> %s must be legal", path[i], path[i+1])
		}
	})

	t.Run("allows cancellation up to batch_forming only", func(t *testing.T) {
		assert.True(t, order.Accepted.CanTransitionTo(order.Cancelled))
		assert.True(t, order.AwaitingPickup.CanTransitionTo(order.Cancelled))
		assert.True(t, order.ReceivedWarehouse.CanTransitionTo(order.Cancelled))
		assert.True(t, order.BatchForming.CanTransitionTo(order.Cancelled))

		assert.False(t, order.CustomsPresented.CanTransitionTo(order.Cancelled))
		assert.False(t, order.Shipped.CanTransitionTo(order.Cancelled))
		assert.False(t, order.InTransit.CanTransitionTo(order.Cancelled))
	})

	t.Run("allows problem from customs and carrier stages", func(t *testing.T) {
		assert.True(t, order.CustomsPresented.CanTransitionTo(order.Problem))
		assert.True(t, order.CustomsCleared.CanTransitionTo(order.Problem))
		assert.True(t, order.AwaitingCarrier.CanTransitionTo(order.Problem))

		assert.False(t, order.Accepted.CanTransitionTo(order.Problem))
		assert.False(t, order.Shipped.CanTransitionTo(order.Problem))
	})

	t.Run("problem recovers into any non-terminal stage", func(t *testing.T) {
		recoverable := []order.Status{
			order.Accepted, order.AwaitingPickup, order.ReceivedWarehouse,
			order.BatchForming, order.CustomsPresented, order.CustomsCleared,
			order.AwaitingCarrier, order.Shipped,
		}
		for _, target := range recoverable {
			assert.True(t, order.Problem.CanTransitionTo(target),
				"problem -> %s must be legal", target)
		}

		assert.False(t, order.Problem.CanTransitionTo(order.Delivered))
		assert.False(t, order.Problem.CanTransitionTo(order.Cancelled))
	})

	t.Run("forbids skipping stages", func(t *testing.T) {
		assert.False(t, order.Accepted.CanTransitionTo(order.ReceivedWarehouse))
		assert.False(t, order.ReceivedWarehouse.CanTransitionTo(order.CustomsPresented))
		assert.False(t, order.Shipped.CanTransitionTo(order.Delivered))
	})

	t.Run("forbids self transitions", func(t *testing.T) {
		for s := order.Accepted; s <= order.Problem; s++ {
			assert.False(t, s.CanTransitionTo(s), "%s -> %s must be illegal", s, s)
		}
	})
}

func TestStatus_ValidateTransitionTo(t *testing.T) {
	err := order.Delivered.ValidateTransitionTo(order.Shipped)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t,
		"illegal status transition: order cannot move from delivered to shipped",
		err.Error())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for s := order.Accepted; s <= order.InTransit; s++ {
		assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
	}
	assert.False(t, order.Problem.IsTerminal())
}

func TestStatus_IsGrouped(t *testing.T) {
	grouped := []order.Status{
		order.BatchForming, order.CustomsPresented, order.CustomsCleared,
		order.AwaitingCarrier, order.Shipped, order.InTransit, order.Delivered,
	}
	for _, s := range grouped {
		assert.True(t, s.IsGrouped(), "%s must be a grouped stage", s)
	}

	ungrouped := []order.Status{
		order.Accepted, order.AwaitingPickup, order.ReceivedWarehouse,
		order.Cancelled, order.Problem,
	}
	for _, s := range ungrouped {
		assert.False(t, s.IsGrouped(), "%s must not be a grouped stage", s)
	}

	assert.True(t, order.Problem.MayHoldGroupRef())
	assert.False(t, order.Cancelled.MayHoldGroupRef())
}

func TestIsRegroupingEdge(t *testing.T) {
	assert.True(t, order.IsRegroupingEdge(order.BatchForming, order.ReceivedWarehouse))
	assert.False(t, order.IsRegroupingEdge(order.BatchForming, order.CustomsPresented))
	assert.False(t, order.IsRegroupingEdge(order.AwaitingPickup, order.ReceivedWarehouse))
}

func TestStatus_Validate(t *testing.T) {
	for s := order.Accepted; s <= order.Problem; s++ {
		require.NoError(t, s.Validate())
	}

	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(-1).Validate())
	assert.Error(t, order.Status(99).Validate())
}
