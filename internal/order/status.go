package order

import (
	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

var nextStatus = map[dbgen.OrderStatus]dbgen.OrderStatus{
	dbgen.OrderStatusAwaitingConfirmation: dbgen.OrderStatusConfirmed,
	dbgen.OrderStatusConfirmed:            dbgen.OrderStatusPreparing,
	dbgen.OrderStatusPreparing:            dbgen.OrderStatusReady,
	dbgen.OrderStatusReady:                dbgen.OrderStatusPickedUp,
	dbgen.OrderStatusPickedUp:             dbgen.OrderStatusDelivered,
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status dbgen.OrderStatus) bool {
	return status == dbgen.OrderStatusDelivered || status == dbgen.OrderStatusCancelled
}

// CanTransition reports whether role may move an order from one status to
// another. Forward moves are single steps; cancellation depends on the role.
// Shippers never move orders here: pickup and delivery follow the delivery
// status through shipping.DeliveryService.
func CanTransition(role string, from, to dbgen.OrderStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if to == dbgen.OrderStatusCancelled {
		switch role {
		case common.RoleCustomer:
			return from == dbgen.OrderStatusAwaitingConfirmation
		case common.RoleStore, common.RoleAdmin:
			return true
		default:
			return false
		}
	}
	if nextStatus[from] != to {
		return false
	}
	switch role {
	case common.RoleAdmin:
		return true
	case common.RoleStore:
		return to == dbgen.OrderStatusConfirmed || to == dbgen.OrderStatusPreparing || to == dbgen.OrderStatusReady
	default:
		return false
	}
}
