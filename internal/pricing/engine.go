package pricing

import "github.com/shopspring/decimal"

// UnitPlaces is the precision discount allocations are rounded to.
const UnitPlaces int32 = 0

// Line describes an order line priced at checkout time.
type Line struct {
	Quantity    int32
	FoodPrice   decimal.Decimal
	OptionPrice decimal.Decimal
}

// Subtotal returns (food price + option price) × quantity.
func (l Line) Subtotal() decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	return l.FoodPrice.Add(l.OptionPrice).Mul(decimal.NewFromInt32(l.Quantity))
}

// Summary aggregates the financial breakdown of a single order.
type Summary struct {
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Discount  decimal.Decimal
	Effective decimal.Decimal
	Total     decimal.Decimal
	Clamped   bool
}

// Round rounds half away from zero, which is half-up for the non-negative
// amounts money math deals with.
func Round(v decimal.Decimal, places int32) decimal.Decimal {
	return v.Round(places)
}

// Subtotal sums the line subtotals.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Compute settles an order: the discount may consume the food cost but never
// the shipping fee, so Total = max(shipping, subtotal + shipping − discount).
func Compute(subtotal, shipping, discount decimal.Decimal) Summary {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	before := subtotal.Add(shipping)
	total := before.Sub(discount)
	clamped := false
	if total.LessThan(shipping) {
		total = shipping
		clamped = true
	}
	return Summary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Discount:  discount,
		Effective: before.Sub(total),
		Total:     total,
		Clamped:   clamped,
	}
}

// Allocate splits amount across weights proportionally. Every share except the
// last is rounded to places; the last absorbs the residual so the shares always
// sum to amount exactly. Shares never go negative. With no positive weight the
// last slot takes everything.
func Allocate(amount decimal.Decimal, weights []decimal.Decimal, places int32) []decimal.Decimal {
	if len(weights) == 0 {
		return nil
	}
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if !amount.IsPositive() {
		return shares
	}
	total := decimal.Zero
	for _, w := range weights {
		if w.IsPositive() {
			total = total.Add(w)
		}
	}
	last := len(weights) - 1
	if !total.IsPositive() {
		shares[last] = amount
		return shares
	}
	remaining := amount
	for i := 0; i < last; i++ {
		w := weights[i]
		if !w.IsPositive() {
			continue
		}
		share := Round(amount.Mul(w).Div(total), places)
		if share.GreaterThan(remaining) {
			share = remaining
		}
		shares[i] = share
		remaining = remaining.Sub(share)
	}
	shares[last] = remaining
	return shares
}
