package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

var (
	// ErrInactive is returned when the promotion has been switched off.
	ErrInactive = errors.New("promotion inactive")
	// ErrNotStarted is returned before the validity window opens.
	ErrNotStarted = errors.New("promotion not started")
	// ErrExpired is returned after the validity window closes.
	ErrExpired = errors.New("promotion expired")
	// ErrMinimumSpendUnmet indicates the order amount is below minimum_pay.
	ErrMinimumSpendUnmet = errors.New("promotion minimum spend not met")
	// ErrScopeMismatch indicates a store promotion evaluated against another store.
	ErrScopeMismatch = errors.New("promotion scope mismatch")

	// ErrCapOnAmount rejects a max discount on a flat AMOUNT promotion.
	ErrCapOnAmount = errors.New("max_discount_amount is only allowed for PERCENT promotions")
	// ErrInvalidValue rejects out of range discount values.
	ErrInvalidValue = errors.New("invalid discount value")
	// ErrInvalidWindow rejects an end date before the start date.
	ErrInvalidWindow = errors.New("end_date must not be before start_date")
	// ErrInvalidScope rejects a scope other than GLOBAL or STORE.
	ErrInvalidScope = errors.New("scope must be GLOBAL or STORE")
	// ErrStoreRequired is returned for STORE scope without a store.
	ErrStoreRequired = errors.New("store scoped promotion requires a store")
)

// Scope says whether a promotion applies platform wide or to a single store.
type Scope string

const (
	ScopeGlobal Scope = "GLOBAL"
	ScopeStore  Scope = "STORE"
)

// Kind is the discount computation.
type Kind string

const (
	KindPercent Kind = "PERCENT"
	KindAmount  Kind = "AMOUNT"
)

// MoneyPlaces is the precision computed discounts are rounded to.
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Rule captures the runtime constraints of a promotion.
type Rule struct {
	ID          uuid.UUID
	Name        string
	Scope       Scope
	StoreID     *uuid.UUID
	Kind        Kind
	Value       decimal.Decimal
	MaxDiscount *decimal.Decimal
	MinimumPay  decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
}

// Validate reports why the rule cannot be applied to an order of amount placed
// at storeID. Global promotions ignore storeID. The window is inclusive on
// both ends.
func (r Rule) Validate(amount decimal.Decimal, storeID uuid.UUID, now time.Time) error {
	if !r.IsActive {
		return ErrInactive
	}
	if now.Before(r.StartDate) {
		return ErrNotStarted
	}
	if now.After(r.EndDate) {
		return ErrExpired
	}
	if amount.LessThan(r.MinimumPay) {
		return ErrMinimumSpendUnmet
	}
	if r.Scope == ScopeStore && (r.StoreID == nil || *r.StoreID != storeID) {
		return ErrScopeMismatch
	}
	return nil
}

// IsValidForOrder is the boolean form of Validate.
func (r Rule) IsValidForOrder(amount decimal.Decimal, storeID uuid.UUID, now time.Time) bool {
	return r.Validate(amount, storeID, now) == nil
}

// CalculateDiscount returns the discount the rule grants on amount. PERCENT is
// capped by MaxDiscount when set; AMOUNT is flat. The result is never negative
// and is not limited to amount: clamping the order total is the caller's job.
func (r Rule) CalculateDiscount(amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch r.Kind {
	case KindPercent:
		discount = amount.Mul(r.Value).Div(hundred).Round(MoneyPlaces)
		if r.MaxDiscount != nil && discount.GreaterThan(*r.MaxDiscount) {
			discount = *r.MaxDiscount
		}
	case KindAmount:
		discount = r.Value
	default:
		return decimal.Zero
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// Check validates the definition of a rule before it is stored.
func (r Rule) Check() error {
	switch r.Kind {
	case KindPercent:
		if !r.Value.IsPositive() || r.Value.GreaterThan(hundred) {
			return ErrInvalidValue
		}
		if r.MaxDiscount != nil && !r.MaxDiscount.IsPositive() {
			return ErrInvalidValue
		}
	case KindAmount:
		if r.MaxDiscount != nil {
			return ErrCapOnAmount
		}
		if !r.Value.IsPositive() {
			return ErrInvalidValue
		}
	default:
		return ErrInvalidValue
	}
	if r.MinimumPay.IsNegative() {
		return ErrInvalidValue
	}
	if r.EndDate.Before(r.StartDate) {
		return ErrInvalidWindow
	}
	switch r.Scope {
	case ScopeGlobal:
	case ScopeStore:
		if r.StoreID == nil {
			return ErrStoreRequired
		}
	default:
		return ErrInvalidScope
	}
	return nil
}

// FromFloat converts a float amount into a decimal before any arithmetic
// happens on it.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// SkipReason maps a validation error onto a short metric label.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrInactive):
		return "inactive"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrMinimumSpendUnmet):
		return "minimum_spend"
	case errors.Is(err, ErrScopeMismatch):
		return "scope"
	default:
		return "invalid"
	}
}

// RuleFromModel converts the generated model into a Rule used for evaluation.
func RuleFromModel(p dbgen.Promotion) Rule {
	rule := Rule{
		ID:         uuid.UUID(p.ID.Bytes),
		Name:       p.Name,
		Scope:      Scope(p.Scope),
		Kind:       Kind(p.DiscountType),
		Value:      p.DiscountValue,
		MinimumPay: p.MinimumPay,
		StartDate:  p.StartDate.Time,
		EndDate:    p.EndDate.Time,
		IsActive:   p.IsActive,
	}
	if p.StoreID.Valid {
		id := uuid.UUID(p.StoreID.Bytes)
		rule.StoreID = &id
	}
	if p.MaxDiscountAmount.Valid {
		capped := p.MaxDiscountAmount.Decimal
		rule.MaxDiscount = &capped
	}
	return rule
}
