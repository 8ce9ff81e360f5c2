package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/obs"
)

var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidTransition rejects anything but the next delivery step.
	ErrInvalidTransition = errors.New("invalid delivery transition")
	// ErrAlreadyAssigned is returned when another shipper holds the order.
	ErrAlreadyAssigned = errors.New("order already assigned to a shipper")
	// ErrNotAssigned is returned when the caller is not the assigned shipper.
	ErrNotAssigned = errors.New("order is not assigned to this shipper")
	// ErrOrderCancelled blocks delivery work on cancelled orders.
	ErrOrderCancelled = errors.New("order has been cancelled")
	// ErrOrderNotReady blocks pickup until the kitchen marks the order ready.
	ErrOrderNotReady = errors.New("order is not ready for pickup")
)

var nextDelivery = map[dbgen.DeliveryStatus]dbgen.DeliveryStatus{
	dbgen.DeliveryStatusAwaitingConfirmation: dbgen.DeliveryStatusAccepted,
	dbgen.DeliveryStatusAccepted:             dbgen.DeliveryStatusPickedUp,
	dbgen.DeliveryStatusPickedUp:             dbgen.DeliveryStatusDelivering,
	dbgen.DeliveryStatusDelivering:           dbgen.DeliveryStatusDelivered,
}

// CanAdvance reports whether next is the single step after current.
func CanAdvance(current, next dbgen.DeliveryStatus) bool {
	want, ok := nextDelivery[current]
	return ok && want == next
}

// DeliveryService drives the shipper side of an order.
type DeliveryService struct {
	Store db.Store
	Bus   *events.Bus
}

// Advance moves the delivery of orderID to next on behalf of shipperID.
func (s *DeliveryService) Advance(ctx context.Context, shipperID, orderID pgtype.UUID, next dbgen.DeliveryStatus) (dbgen.Order, error) {
	if !next.Valid() {
		return dbgen.Order{}, ErrInvalidTransition
	}
	var (
		updated     dbgen.Order
		orderSynced bool
	)
	err := s.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		order, err := q.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.OrderStatus == dbgen.OrderStatusCancelled {
			return ErrOrderCancelled
		}
		if !CanAdvance(order.DeliveryStatus, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.DeliveryStatus, next)
		}
		if next == dbgen.DeliveryStatusAccepted {
			if order.ShipperID.Valid {
				return ErrAlreadyAssigned
			}
		} else if !common.UUIDEqual(order.ShipperID, shipperID) {
			return ErrNotAssigned
		}

		syncTo := dbgen.OrderStatus("")
		switch next {
		case dbgen.DeliveryStatusPickedUp:
			if order.OrderStatus != dbgen.OrderStatusReady {
				return ErrOrderNotReady
			}
			syncTo = dbgen.OrderStatusPickedUp
		case dbgen.DeliveryStatusDelivered:
			if order.OrderStatus == dbgen.OrderStatusPickedUp {
				syncTo = dbgen.OrderStatusDelivered
			}
		}

		updated, err = q.UpdateDeliveryStatus(ctx, dbgen.UpdateDeliveryStatusParams{
			ID:             order.ID,
			DeliveryStatus: next,
			ShipperID:      shipperID,
		})
		if err != nil {
			return err
		}
		if syncTo != "" {
			updated, err = q.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{ID: order.ID, OrderStatus: syncTo})
			if err != nil {
				return err
			}
			orderSynced = true
		}
		return nil
	})
	if err != nil {
		return dbgen.Order{}, err
	}

	obs.OrderTransitionsTotal.WithLabelValues("delivery", string(next)).Inc()
	s.Bus.Publish(ctx, events.TopicDeliveryStatusChanged, updated.ID, map[string]any{
		"order_id":        common.UUIDString(updated.ID),
		"group_id":        common.UUIDString(updated.GroupID),
		"shipper_id":      common.UUIDString(updated.ShipperID),
		"delivery_status": string(updated.DeliveryStatus),
	})
	if orderSynced {
		obs.OrderTransitionsTotal.WithLabelValues("order", string(updated.OrderStatus)).Inc()
		s.Bus.Publish(ctx, events.TopicOrderStatusChanged, updated.ID, map[string]any{
			"order_id":     common.UUIDString(updated.ID),
			"group_id":     common.UUIDString(updated.GroupID),
			"order_status": string(updated.OrderStatus),
		})
	}
	return updated, nil
}

// Available lists orders no shipper has accepted yet.
func (s *DeliveryService) Available(ctx context.Context, limit int32) ([]dbgen.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Store.ListAvailableDeliveries(ctx, limit)
}
