package commands_test

import (
	"testing"
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// warehouseOrderAt builds an order that arrived at the warehouse at the given
// moment and is eligible for grouping.
func warehouseOrderAt(t *testing.T, receivedAt time.Time) *order.Order {
	t.Helper()

	postalCode, err := kernel.NewPostalCode("101000")
	require.NoError(t, err)
	recipient, err := order.NewRecipient("Иванов Иван", "+79161234567", "ул. Ленина, 1", postalCode)
	require.NoError(t, err)
	item, err := order.NewItem("Настольная лампа", 1, 250000, 800)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "SHOP-1001", "msk", recipient,
		[]order.Item{item}, receivedAt.Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.AwaitingPickup, "", receivedAt.Add(-time.Hour)))
	require.NoError(t, o.TransitionTo(order.ReceivedWarehouse, "", receivedAt))
	return o
}

// formingGroupWith builds a forming group and joins every order to it.
func formingGroupWith(t *testing.T, members []*order.Order, now time.Time) *group.Group {
	t.Helper()

	g, err := group.NewGroup(kernel.NewUUID(), "GRP-20250314-MSK-0001",
		"msk", "Москва", "truck", now)
	require.NoError(t, err)
	for _, member := range members {
		require.NoError(t, member.JoinGroup(g.ID(), "", now))
		require.NoError(t, g.AddMember(member.ID(), member.TotalWeightGrams(), now))
	}
	return g
}
