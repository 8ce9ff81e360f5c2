package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-food/internal/catalog"
	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/obs"
)

var (
	// ErrNotFound is returned when the order does not exist or is not visible
	// to the caller.
	ErrNotFound = errors.New("order not found")
	// ErrForbidden is returned when the caller may see but not change the order.
	ErrForbidden = errors.New("order change not allowed")
	// ErrInvalidTransition rejects moves the status machine does not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrGroupNotCancellable is returned when an order of the group has progressed.
	ErrGroupNotCancellable = errors.New("order group can no longer be cancelled")
)

// GroupBlockedError lists the orders that keep a group from being cancelled.
type GroupBlockedError struct {
	OrderIDs []string
}

func (e *GroupBlockedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrGroupNotCancellable, strings.Join(e.OrderIDs, ", "))
}

func (e *GroupBlockedError) Is(target error) bool { return target == ErrGroupNotCancellable }

// Refund carries the bank details a customer leaves when cancelling a paid order.
type Refund struct {
	BankName      string `json:"bank_name" validate:"required,max=120"`
	AccountNumber string `json:"account_number" validate:"required,max=64"`
	AccountName   string `json:"account_name" validate:"required,max=120"`
}

// StatusInput is the body of a status change.
type StatusInput struct {
	Status       string  `json:"new_status" validate:"required,oneof=confirmed preparing ready picked_up delivered cancelled"`
	CancelReason string  `json:"cancel_reason" validate:"max=500"`
	Refund       *Refund `json:"refund"`
}

// GroupCancelInput is the body of a group cancellation.
type GroupCancelInput struct {
	Confirmed bool    `json:"confirmed"`
	CheckOnly bool    `json:"check_only"`
	Reason    string  `json:"reason" validate:"max=500"`
	Refund    *Refund `json:"refund"`
}

// GroupCancelResult describes a group cancellation or the prompt preceding it.
type GroupCancelResult struct {
	GroupID   pgtype.UUID
	Orders    []dbgen.Order
	Cancelled bool
}

// Detail is an order with its lines and attributions.
type Detail struct {
	Order      dbgen.Order
	Items      []dbgen.OrderItem
	Promotions []dbgen.OrderPromotion
}

// Service runs the customer, store and admin side of the order lifecycle.
type Service struct {
	Store   db.Store
	Catalog *catalog.Directory
	Bus     *events.Bus
	Now     func() time.Time
}

// access is what the caller is allowed to touch.
type access struct {
	actor   common.Identity
	userID  pgtype.UUID
	storeID pgtype.UUID
}

func (s *Service) resolve(ctx context.Context, actor common.Identity) (access, error) {
	userID, err := common.ParseUUID(actor.UserID)
	if err != nil {
		return access{}, ErrForbidden
	}
	a := access{actor: actor, userID: userID}
	if actor.Role == common.RoleStore {
		info, err := s.Catalog.StoreByManager(ctx, uuid.UUID(userID.Bytes))
		if err != nil {
			if errors.Is(err, catalog.ErrStoreNotFound) {
				return access{}, ErrForbidden
			}
			return access{}, err
		}
		a.storeID = common.PGUUID(info.ID)
	}
	return a, nil
}

// canSee hides orders from callers unrelated to them.
func (a access) canSee(o dbgen.Order) bool {
	switch a.actor.Role {
	case common.RoleAdmin:
		return true
	case common.RoleCustomer:
		return common.UUIDEqual(o.UserID, a.userID)
	case common.RoleStore:
		return common.UUIDEqual(o.StoreID, a.storeID)
	case common.RoleShipper:
		return common.UUIDEqual(o.ShipperID, a.userID)
	default:
		return false
	}
}

// UpdateStatus moves orderID to a new order status on behalf of actor.
func (s *Service) UpdateStatus(ctx context.Context, actor common.Identity, orderID pgtype.UUID, in StatusInput) (dbgen.Order, error) {
	to := dbgen.OrderStatus(in.Status)
	if !to.Valid() {
		return dbgen.Order{}, ErrInvalidTransition
	}
	acc, err := s.resolve(ctx, actor)
	if err != nil {
		return dbgen.Order{}, err
	}

	var updated dbgen.Order
	err = s.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		current, err := q.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if !acc.canSee(current) {
			return ErrNotFound
		}
		if !CanTransition(actor.Role, current.OrderStatus, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.OrderStatus, to)
		}
		if to == dbgen.OrderStatusCancelled {
			updated, err = q.CancelOrder(ctx, cancelParams(current, actor.Role, in.CancelReason, in.Refund, s.now()))
		} else {
			updated, err = q.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{ID: current.ID, OrderStatus: to})
		}
		return err
	})
	if err != nil {
		return dbgen.Order{}, err
	}

	obs.OrderTransitionsTotal.WithLabelValues("order", string(to)).Inc()
	topic := events.TopicOrderStatusChanged
	payload := map[string]any{
		"order_id":     common.UUIDString(updated.ID),
		"group_id":     common.UUIDString(updated.GroupID),
		"order_status": string(updated.OrderStatus),
		"actor_role":   actor.Role,
	}
	if to == dbgen.OrderStatusCancelled {
		topic = events.TopicOrderCanceled
		payload["cancel_reason"] = updated.CancelReason.String
		payload["refund_status"] = string(updated.RefundStatus)
	}
	s.Bus.Publish(ctx, topic, updated.ID, payload)
	return updated, nil
}

// CancelGroup cancels every order born from the same checkout as orderID.
// Nothing changes unless all of them still await confirmation. Without
// confirmation, or with checkOnly, the orders are returned as a prompt.
func (s *Service) CancelGroup(ctx context.Context, actor common.Identity, orderID pgtype.UUID, in GroupCancelInput) (GroupCancelResult, error) {
	if actor.Role != common.RoleCustomer {
		return GroupCancelResult{}, ErrForbidden
	}
	acc, err := s.resolve(ctx, actor)
	if err != nil {
		return GroupCancelResult{}, err
	}

	var res GroupCancelResult
	err = s.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		anchor, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if !acc.canSee(anchor) {
			return ErrNotFound
		}
		group, err := q.ListOrdersByGroupForUpdate(ctx, anchor.GroupID)
		if err != nil {
			return err
		}
		var blocking []string
		for _, o := range group {
			if o.OrderStatus != dbgen.OrderStatusAwaitingConfirmation {
				blocking = append(blocking, common.UUIDString(o.ID))
			}
		}
		if len(blocking) > 0 {
			return &GroupBlockedError{OrderIDs: blocking}
		}
		res = GroupCancelResult{GroupID: anchor.GroupID, Orders: group}
		if in.CheckOnly || !in.Confirmed {
			return nil
		}

		now := s.now()
		res.Orders = make([]dbgen.Order, 0, len(group))
		for _, o := range group {
			updated, err := q.CancelOrder(ctx, cancelParams(o, common.RoleCustomer, in.Reason, in.Refund, now))
			if err != nil {
				return err
			}
			res.Orders = append(res.Orders, updated)
		}
		res.Cancelled = true
		return nil
	})
	if err != nil {
		return GroupCancelResult{}, err
	}
	if !res.Cancelled {
		return res, nil
	}

	ids := make([]string, 0, len(res.Orders))
	for _, o := range res.Orders {
		ids = append(ids, common.UUIDString(o.ID))
		obs.OrderTransitionsTotal.WithLabelValues("order", string(dbgen.OrderStatusCancelled)).Inc()
		s.Bus.Publish(ctx, events.TopicOrderCanceled, o.ID, map[string]any{
			"order_id":      common.UUIDString(o.ID),
			"group_id":      common.UUIDString(o.GroupID),
			"order_status":  string(o.OrderStatus),
			"actor_role":    common.RoleCustomer,
			"cancel_reason": o.CancelReason.String,
			"refund_status": string(o.RefundStatus),
		})
	}
	s.Bus.Publish(ctx, events.TopicOrderGroupCanceled, res.GroupID, map[string]any{
		"group_id":  common.UUIDString(res.GroupID),
		"order_ids": ids,
	})
	return res, nil
}

// Get returns an order visible to actor together with its children.
func (s *Service) Get(ctx context.Context, actor common.Identity, orderID pgtype.UUID) (Detail, error) {
	acc, err := s.resolve(ctx, actor)
	if err != nil {
		return Detail{}, err
	}
	o, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, err
	}
	if !acc.canSee(o) {
		return Detail{}, ErrNotFound
	}
	items, err := s.Store.ListOrderItems(ctx, o.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("list order items: %w", err)
	}
	promos, err := s.Store.ListOrderPromotions(ctx, o.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("list order promotions: %w", err)
	}
	return Detail{Order: o, Items: items, Promotions: promos}, nil
}

// Group returns the orders of one checkout that actor may see.
func (s *Service) Group(ctx context.Context, actor common.Identity, groupID pgtype.UUID) ([]dbgen.Order, error) {
	acc, err := s.resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	orders, err := s.Store.ListOrdersByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	visible := orders[:0]
	for _, o := range orders {
		if acc.canSee(o) {
			visible = append(visible, o)
		}
	}
	if len(visible) == 0 {
		return nil, ErrNotFound
	}
	return visible, nil
}

// List pages through the caller's orders: a store manager sees the store's
// orders, anyone else the orders they placed.
func (s *Service) List(ctx context.Context, actor common.Identity, page, perPage int) ([]dbgen.Order, int64, error) {
	acc, err := s.resolve(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	offset := int32((page - 1) * perPage)
	if acc.storeID.Valid {
		total, err := s.Store.CountOrdersForStore(ctx, acc.storeID)
		if err != nil {
			return nil, 0, err
		}
		orders, err := s.Store.ListOrdersForStore(ctx, dbgen.ListOrdersForStoreParams{StoreID: acc.storeID, Limit: int32(perPage), Offset: offset})
		return orders, total, err
	}
	total, err := s.Store.CountOrdersForUser(ctx, acc.userID)
	if err != nil {
		return nil, 0, err
	}
	orders, err := s.Store.ListOrdersForUser(ctx, dbgen.ListOrdersForUserParams{UserID: acc.userID, Limit: int32(perPage), Offset: offset})
	return orders, total, err
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// cancelParams builds the cancellation row. A customer cancelling an online
// payment with bank details opens a pending refund.
func cancelParams(o dbgen.Order, role, reason string, refund *Refund, at time.Time) dbgen.CancelOrderParams {
	p := dbgen.CancelOrderParams{
		ID:              o.ID,
		CancelReason:    pgtype.Text{String: strings.TrimSpace(reason), Valid: strings.TrimSpace(reason) != ""},
		CancelledAt:     pgtype.Timestamptz{Time: at, Valid: true},
		CancelledByRole: dbgen.NullActorRole{ActorRole: dbgen.ActorRole(role), Valid: true},
		RefundStatus:    dbgen.RefundStatusNone,
	}
	if role == common.RoleCustomer && o.PaymentMethod == dbgen.PaymentMethodOnline && refund != nil {
		p.RefundRequested = true
		p.RefundStatus = dbgen.RefundStatusPending
		p.RefundBankName = pgtype.Text{String: refund.BankName, Valid: true}
		p.RefundAccountNumber = pgtype.Text{String: refund.AccountNumber, Valid: true}
		p.RefundAccountName = pgtype.Text{String: refund.AccountName, Valid: true}
	}
	return p
}
