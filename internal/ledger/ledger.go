package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/promotion"
)

var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPromotionNotFound is returned when the promotion does not exist.
	ErrPromotionNotFound = errors.New("promotion not found")
	// ErrDuplicateAttribution rejects attaching a promotion twice to one order.
	ErrDuplicateAttribution = errors.New("promotion already attached to order")
	// ErrAttributionNotFound is returned when the promotion is not attached.
	ErrAttributionNotFound = errors.New("promotion is not attached to order")
	// ErrNegativeAmount rejects negative applied amounts.
	ErrNegativeAmount = errors.New("applied amount must not be negative")
	// ErrScopeMismatch rejects a store promotion on another store's order.
	ErrScopeMismatch = promotion.ErrScopeMismatch
)

// Result is an attribution together with the recomputed order.
type Result struct {
	Order       dbgen.Order
	Attribution dbgen.OrderPromotion
}

// Ledger maintains promotion attributions of placed orders.
type Ledger struct {
	Store db.Store
	Bus   *events.Bus
}

// Attach links promoID to orderID. A nil amount applies the rule's discount
// for the order subtotal.
func (l *Ledger) Attach(ctx context.Context, orderID, promoID uuid.UUID, amount *decimal.Decimal, note string) (Result, error) {
	var res Result
	err := l.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		order, err := lockOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		key := dbgen.GetOrderPromotionParams{OrderID: order.ID, PromotionID: common.PGUUID(promoID)}
		if _, err := q.GetOrderPromotion(ctx, key); err == nil {
			return ErrDuplicateAttribution
		} else if !db.IsNotFound(err) {
			return fmt.Errorf("get attribution: %w", err)
		}
		promo, err := q.GetPromotion(ctx, common.PGUUID(promoID))
		if err != nil {
			if db.IsNotFound(err) {
				return ErrPromotionNotFound
			}
			return fmt.Errorf("get promotion: %w", err)
		}
		rule := promotion.RuleFromModel(promo)
		if rule.Scope == promotion.ScopeStore && (rule.StoreID == nil || *rule.StoreID != uuid.UUID(order.StoreID.Bytes)) {
			return ErrScopeMismatch
		}
		applied := rule.CalculateDiscount(order.Subtotal)
		if amount != nil {
			applied = *amount
		}
		if applied.IsNegative() {
			return ErrNegativeAmount
		}
		res.Attribution, err = q.InsertOrderPromotion(ctx, dbgen.InsertOrderPromotionParams{
			OrderID:       order.ID,
			PromotionID:   promo.ID,
			AppliedAmount: applied,
			Note:          note,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrDuplicateAttribution
			}
			return fmt.Errorf("insert attribution: %w", err)
		}
		res.Order, err = Recompute(ctx, q, order.ID)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	l.publish(ctx, res.Order, "attach", promoID)
	return res, nil
}

// Update changes the amount and note of an existing attribution.
func (l *Ledger) Update(ctx context.Context, orderID, promoID uuid.UUID, amount decimal.Decimal, note string) (Result, error) {
	if amount.IsNegative() {
		return Result{}, ErrNegativeAmount
	}
	var res Result
	err := l.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		order, err := lockOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		res.Attribution, err = q.UpdateOrderPromotion(ctx, dbgen.UpdateOrderPromotionParams{
			OrderID:       order.ID,
			PromotionID:   common.PGUUID(promoID),
			AppliedAmount: amount,
			Note:          note,
		})
		if err != nil {
			if db.IsNotFound(err) {
				return ErrAttributionNotFound
			}
			return fmt.Errorf("update attribution: %w", err)
		}
		res.Order, err = Recompute(ctx, q, order.ID)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	l.publish(ctx, res.Order, "update", promoID)
	return res, nil
}

// Detach removes an attribution and returns the recomputed order.
func (l *Ledger) Detach(ctx context.Context, orderID, promoID uuid.UUID) (dbgen.Order, error) {
	var updated dbgen.Order
	err := l.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		order, err := lockOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		n, err := q.DeleteOrderPromotion(ctx, dbgen.DeleteOrderPromotionParams{
			OrderID:     order.ID,
			PromotionID: common.PGUUID(promoID),
		})
		if err != nil {
			return fmt.Errorf("delete attribution: %w", err)
		}
		if n == 0 {
			return ErrAttributionNotFound
		}
		updated, err = Recompute(ctx, q, order.ID)
		return err
	})
	if err != nil {
		return dbgen.Order{}, err
	}
	l.publish(ctx, updated, "detach", promoID)
	return updated, nil
}

// RecomputeOrder runs Recompute in its own transaction.
func (l *Ledger) RecomputeOrder(ctx context.Context, orderID uuid.UUID) (dbgen.Order, error) {
	var updated dbgen.Order
	err := l.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		var err error
		updated, err = Recompute(ctx, q, common.PGUUID(orderID))
		return err
	})
	return updated, err
}

// Attributions lists the promotions attached to an order.
func (l *Ledger) Attributions(ctx context.Context, orderID uuid.UUID) ([]dbgen.OrderPromotion, error) {
	if _, err := l.Store.GetOrder(ctx, common.PGUUID(orderID)); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return l.Store.ListOrderPromotions(ctx, common.PGUUID(orderID))
}

func lockOrder(ctx context.Context, q dbgen.Querier, orderID uuid.UUID) (dbgen.Order, error) {
	order, err := q.GetOrderForUpdate(ctx, common.PGUUID(orderID))
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Order{}, ErrOrderNotFound
		}
		return dbgen.Order{}, fmt.Errorf("lock order: %w", err)
	}
	return order, nil
}

func (l *Ledger) publish(ctx context.Context, order dbgen.Order, action string, promoID uuid.UUID) {
	l.Bus.Publish(ctx, events.TopicOrderTotalsChanged, order.ID, map[string]any{
		"order_id":             common.UUIDString(order.ID),
		"promotion_id":         promoID.String(),
		"action":               action,
		"total_discount":       order.TotalDiscount,
		"total_after_discount": order.TotalAfterDiscount,
	})
}

