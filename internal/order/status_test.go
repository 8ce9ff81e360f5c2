package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		role     string
		from, to dbgen.OrderStatus
		want     bool
	}{
		{common.RoleStore, dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusConfirmed, true},
		{common.RoleStore, dbgen.OrderStatusConfirmed, dbgen.OrderStatusPreparing, true},
		{common.RoleStore, dbgen.OrderStatusPreparing, dbgen.OrderStatusReady, true},
		{common.RoleStore, dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusPreparing, false},
		{common.RoleStore, dbgen.OrderStatusReady, dbgen.OrderStatusPickedUp, false},
		{common.RoleStore, dbgen.OrderStatusReady, dbgen.OrderStatusCancelled, true},
		{common.RoleStore, dbgen.OrderStatusDelivered, dbgen.OrderStatusCancelled, false},
		{common.RoleCustomer, dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusCancelled, true},
		{common.RoleCustomer, dbgen.OrderStatusConfirmed, dbgen.OrderStatusCancelled, false},
		{common.RoleCustomer, dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusConfirmed, false},
		{common.RoleShipper, dbgen.OrderStatusReady, dbgen.OrderStatusPickedUp, false},
		{common.RoleShipper, dbgen.OrderStatusPickedUp, dbgen.OrderStatusDelivered, false},
		{common.RoleShipper, dbgen.OrderStatusReady, dbgen.OrderStatusCancelled, false},
		{common.RoleAdmin, dbgen.OrderStatusReady, dbgen.OrderStatusPickedUp, true},
		{common.RoleAdmin, dbgen.OrderStatusPickedUp, dbgen.OrderStatusCancelled, true},
		{common.RoleAdmin, dbgen.OrderStatusCancelled, dbgen.OrderStatusAwaitingConfirmation, false},
		{common.RoleAdmin, dbgen.OrderStatusConfirmed, dbgen.OrderStatusAwaitingConfirmation, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.role, tc.from, tc.to)
		require.Equal(t, tc.want, got, "%s: %s -> %s", tc.role, tc.from, tc.to)
	}
}
