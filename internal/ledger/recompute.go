package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/obs"
	"github.com/noah-isme/backend-food/internal/pricing"
)

// Recompute derives total_discount and total_after_discount of an order from
// its attribution rows. It locks the order row, so q must belong to an open
// transaction. Running it twice without attribution changes is a no-op.
func Recompute(ctx context.Context, q dbgen.Querier, orderID pgtype.UUID) (dbgen.Order, error) {
	order, err := q.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Order{}, ErrOrderNotFound
		}
		return dbgen.Order{}, fmt.Errorf("lock order: %w", err)
	}
	sum, err := q.SumOrderPromotionAmounts(ctx, orderID)
	if err != nil {
		return dbgen.Order{}, fmt.Errorf("sum attributions: %w", err)
	}
	settled := pricing.Compute(order.Subtotal, order.ShippingFee, sum)
	obs.LedgerRecomputeTotal.Inc()
	if order.TotalDiscount.Equal(sum) && order.TotalAfterDiscount.Equal(settled.Total) {
		return order, nil
	}
	updated, err := q.UpdateOrderTotals(ctx, dbgen.UpdateOrderTotalsParams{
		ID:                 orderID,
		TotalDiscount:      sum,
		TotalAfterDiscount: settled.Total,
	})
	if err != nil {
		return dbgen.Order{}, fmt.Errorf("update order totals: %w", err)
	}
	return updated, nil
}
