package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

var (
	// ErrNotFound is returned when the promotion does not exist or is not visible to the caller.
	ErrNotFound = errors.New("promotion not found")
	// ErrForbidden is returned when the caller may not manage promotions.
	ErrForbidden = errors.New("promotion management not allowed")
	// ErrInUse is returned when deleting a promotion still attributed to orders.
	ErrInUse = errors.New("promotion is attributed to orders")
)

// Querier captures the database methods required by the promotion service.
type Querier interface {
	GetPromotion(ctx context.Context, id pgtype.UUID) (dbgen.Promotion, error)
	CreatePromotion(ctx context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error)
	UpdatePromotion(ctx context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error)
	DeletePromotion(ctx context.Context, id pgtype.UUID) (int64, error)
	ListPromotions(ctx context.Context, arg dbgen.ListPromotionsParams) ([]dbgen.Promotion, error)
	CountPromotions(ctx context.Context, arg dbgen.CountPromotionsParams) (int64, error)
	ListAvailablePromotions(ctx context.Context, arg dbgen.ListAvailablePromotionsParams) ([]dbgen.Promotion, error)
	GetStoreByID(ctx context.Context, id pgtype.UUID) (dbgen.Store, error)
	GetStoreByManager(ctx context.Context, managerID pgtype.UUID) (dbgen.Store, error)
}

// Input is the writable shape of a promotion.
type Input struct {
	Name              string           `json:"name" validate:"required,max=200"`
	Scope             string           `json:"scope" validate:"omitempty,oneof=GLOBAL STORE"`
	StoreID           string           `json:"store_id" validate:"omitempty,uuid"`
	DiscountType      string           `json:"discount_type" validate:"required,oneof=PERCENT AMOUNT"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	MinimumPay        decimal.Decimal  `json:"minimum_pay"`
	StartDate         time.Time        `json:"start_date" validate:"required"`
	EndDate           time.Time        `json:"end_date" validate:"required"`
	IsActive          *bool            `json:"is_active"`
}

// ListFilter narrows admin listings.
type ListFilter struct {
	StoreID string
	Scope   string
	Page    int
	PerPage int
}

// Service implements promotion management scoped by the caller's role: store
// managers see and edit their own store's promotions only, admins manage all.
type Service struct {
	Q   Querier
	Now func() time.Time
}

// Create stores a new promotion.
func (s *Service) Create(ctx context.Context, actor common.Identity, in Input) (dbgen.Promotion, error) {
	if s == nil || s.Q == nil {
		return dbgen.Promotion{}, errors.New("promotion service not configured")
	}
	rule, err := ruleFromInput(in)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	switch actor.Role {
	case common.RoleStore:
		store, err := s.ownStore(ctx, actor)
		if err != nil {
			return dbgen.Promotion{}, err
		}
		id := uuid.UUID(store.ID.Bytes)
		rule.Scope = ScopeStore
		rule.StoreID = &id
	case common.RoleAdmin:
		if rule.Scope == "" {
			rule.Scope = ScopeGlobal
		}
		if rule.Scope == ScopeGlobal {
			rule.StoreID = nil
		} else if rule.StoreID != nil {
			if _, err := s.Q.GetStoreByID(ctx, common.PGUUID(*rule.StoreID)); err != nil {
				if db.IsNotFound(err) {
					return dbgen.Promotion{}, fmt.Errorf("store %s: %w", rule.StoreID, ErrStoreRequired)
				}
				return dbgen.Promotion{}, err
			}
		}
	default:
		return dbgen.Promotion{}, ErrForbidden
	}
	if err := rule.Check(); err != nil {
		return dbgen.Promotion{}, err
	}

	params := dbgen.CreatePromotionParams{
		Name:              rule.Name,
		Scope:             dbgen.PromotionScope(rule.Scope),
		DiscountType:      dbgen.DiscountKind(rule.Kind),
		DiscountValue:     rule.Value,
		MaxDiscountAmount: nullDecimal(rule.MaxDiscount),
		MinimumPay:        rule.MinimumPay,
		StartDate:         timestamptz(rule.StartDate),
		EndDate:           timestamptz(rule.EndDate),
		IsActive:          rule.IsActive,
	}
	if rule.StoreID != nil {
		params.StoreID = common.PGUUID(*rule.StoreID)
	}
	return s.Q.CreatePromotion(ctx, params)
}

// Get returns a promotion visible to actor.
func (s *Service) Get(ctx context.Context, actor common.Identity, id pgtype.UUID) (dbgen.Promotion, error) {
	return s.visible(ctx, actor, id)
}

// List returns one page of the promotions visible to actor, newest first,
// together with the number of matching promotions across all pages.
func (s *Service) List(ctx context.Context, actor common.Identity, filter ListFilter) ([]dbgen.Promotion, int64, error) {
	if s == nil || s.Q == nil {
		return nil, 0, errors.New("promotion service not configured")
	}
	if filter.PerPage <= 0 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	params := dbgen.ListPromotionsParams{
		RowLimit:  int32(filter.PerPage),
		RowOffset: int32((filter.Page - 1) * filter.PerPage),
	}
	switch actor.Role {
	case common.RoleStore:
		store, err := s.ownStore(ctx, actor)
		if err != nil {
			return nil, 0, err
		}
		params.StoreID = store.ID
	case common.RoleAdmin:
		if filter.StoreID != "" {
			storeID, err := common.ParseUUID(filter.StoreID)
			if err != nil {
				return nil, 0, fmt.Errorf("store_id: %w", ErrStoreRequired)
			}
			params.StoreID = storeID
		}
		if filter.Scope != "" {
			scope := dbgen.PromotionScope(filter.Scope)
			if !scope.Valid() {
				return nil, 0, ErrInvalidScope
			}
			params.Scope = dbgen.NullPromotionScope{PromotionScope: scope, Valid: true}
		}
	default:
		return nil, 0, ErrForbidden
	}
	total, err := s.Q.CountPromotions(ctx, dbgen.CountPromotionsParams{StoreID: params.StoreID, Scope: params.Scope})
	if err != nil {
		return nil, 0, err
	}
	items, err := s.Q.ListPromotions(ctx, params)
	return items, total, err
}

// Update replaces the mutable fields of a promotion. Scope and store are fixed
// at creation.
func (s *Service) Update(ctx context.Context, actor common.Identity, id pgtype.UUID, in Input) (dbgen.Promotion, error) {
	current, err := s.visible(ctx, actor, id)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	rule, err := ruleFromInput(in)
	if err != nil {
		return dbgen.Promotion{}, err
	}
	existing := RuleFromModel(current)
	rule.Scope = existing.Scope
	rule.StoreID = existing.StoreID
	if err := rule.Check(); err != nil {
		return dbgen.Promotion{}, err
	}
	updated, err := s.Q.UpdatePromotion(ctx, dbgen.UpdatePromotionParams{
		ID:                current.ID,
		Name:              rule.Name,
		DiscountType:      dbgen.DiscountKind(rule.Kind),
		DiscountValue:     rule.Value,
		MaxDiscountAmount: nullDecimal(rule.MaxDiscount),
		MinimumPay:        rule.MinimumPay,
		StartDate:         timestamptz(rule.StartDate),
		EndDate:           timestamptz(rule.EndDate),
		IsActive:          rule.IsActive,
	})
	if db.IsNotFound(err) {
		return dbgen.Promotion{}, ErrNotFound
	}
	return updated, err
}

// Delete removes a promotion that is not attributed to any order.
func (s *Service) Delete(ctx context.Context, actor common.Identity, id pgtype.UUID) error {
	current, err := s.visible(ctx, actor, id)
	if err != nil {
		return err
	}
	rows, err := s.Q.DeletePromotion(ctx, current.ID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Available lists promotions a customer can use right now: all global ones
// plus the given store's when storeID is valid.
func (s *Service) Available(ctx context.Context, storeID pgtype.UUID) ([]dbgen.Promotion, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("promotion service not configured")
	}
	return s.Q.ListAvailablePromotions(ctx, dbgen.ListAvailablePromotionsParams{
		Now:     timestamptz(s.now()),
		StoreID: storeID,
	})
}

func (s *Service) visible(ctx context.Context, actor common.Identity, id pgtype.UUID) (dbgen.Promotion, error) {
	if s == nil || s.Q == nil {
		return dbgen.Promotion{}, errors.New("promotion service not configured")
	}
	promo, err := s.Q.GetPromotion(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Promotion{}, ErrNotFound
		}
		return dbgen.Promotion{}, err
	}
	switch actor.Role {
	case common.RoleAdmin:
		return promo, nil
	case common.RoleStore:
		store, err := s.ownStore(ctx, actor)
		if err != nil {
			return dbgen.Promotion{}, err
		}
		if !common.UUIDEqual(promo.StoreID, store.ID) {
			return dbgen.Promotion{}, ErrNotFound
		}
		return promo, nil
	default:
		return dbgen.Promotion{}, ErrForbidden
	}
}

func (s *Service) ownStore(ctx context.Context, actor common.Identity) (dbgen.Store, error) {
	managerID, err := common.ParseUUID(actor.UserID)
	if err != nil {
		return dbgen.Store{}, ErrForbidden
	}
	store, err := s.Q.GetStoreByManager(ctx, managerID)
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Store{}, ErrForbidden
		}
		return dbgen.Store{}, err
	}
	return store, nil
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func ruleFromInput(in Input) (Rule, error) {
	if err := common.ValidateStruct(in); err != nil {
		return Rule{}, err
	}
	rule := Rule{
		Name:        in.Name,
		Scope:       Scope(in.Scope),
		Kind:        Kind(in.DiscountType),
		Value:       in.DiscountValue,
		MaxDiscount: in.MaxDiscountAmount,
		MinimumPay:  in.MinimumPay,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		IsActive:    true,
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if in.StoreID != "" {
		id, err := uuid.Parse(in.StoreID)
		if err != nil {
			return Rule{}, ErrStoreRequired
		}
		rule.StoreID = &id
	}
	return rule, nil
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}
