package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/pricing"
	"github.com/noah-isme/backend-food/internal/promotion"
)

// Share is the part of a promotion attributed to one store order.
type Share struct {
	PromotionID uuid.UUID
	Amount      decimal.Decimal
}

// Applied is a promotion that passed validation. Amount is what gets
// distributed; Targets are the stores it touches in grouping order.
type Applied struct {
	Rule    promotion.Rule
	Server  decimal.Decimal
	Amount  decimal.Decimal
	Targets []uuid.UUID
}

// Allocate distributes every applied promotion over its target stores. A
// store promotion lands on its own store; a global one is split by subtotal
// in whole currency units with the last target absorbing the residual.
func Allocate(subtotals map[uuid.UUID]decimal.Decimal, applied []Applied) map[uuid.UUID][]Share {
	out := make(map[uuid.UUID][]Share)
	for _, a := range applied {
		if len(a.Targets) == 0 || !a.Amount.IsPositive() {
			continue
		}
		if len(a.Targets) == 1 {
			out[a.Targets[0]] = append(out[a.Targets[0]], Share{PromotionID: a.Rule.ID, Amount: a.Amount})
			continue
		}
		weights := make([]decimal.Decimal, len(a.Targets))
		for i, storeID := range a.Targets {
			weights[i] = subtotals[storeID]
		}
		for i, amount := range pricing.Allocate(a.Amount, weights, pricing.UnitPlaces) {
			if !amount.IsPositive() {
				continue
			}
			storeID := a.Targets[i]
			out[storeID] = append(out[storeID], Share{PromotionID: a.Rule.ID, Amount: amount})
		}
	}
	return out
}

// Settle prices one store order. When the shares exceed the subtotal they are
// trimmed from the last one backwards until they sum to the effective
// discount, so attributions always reconcile with the stored totals.
func Settle(subtotal, shippingFee decimal.Decimal, shares []Share) ([]Share, pricing.Summary) {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	summary := pricing.Compute(subtotal, shippingFee, sum)
	if !summary.Clamped {
		return shares, summary
	}
	trimmed := append([]Share(nil), shares...)
	excess := summary.Discount.Sub(summary.Effective)
	for i := len(trimmed) - 1; i >= 0 && excess.IsPositive(); i-- {
		cut := decimal.Min(excess, trimmed[i].Amount)
		trimmed[i].Amount = trimmed[i].Amount.Sub(cut)
		excess = excess.Sub(cut)
	}
	kept := trimmed[:0]
	sum = decimal.Zero
	for _, s := range trimmed {
		if s.Amount.IsPositive() {
			kept = append(kept, s)
			sum = sum.Add(s.Amount)
		}
	}
	settled := pricing.Compute(subtotal, shippingFee, sum)
	settled.Clamped = true
	return kept, settled
}
