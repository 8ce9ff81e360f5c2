package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/cart"
	"github.com/noah-isme/backend-food/internal/catalog"
	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/ledger"
	"github.com/noah-isme/backend-food/internal/lock"
	"github.com/noah-isme/backend-food/internal/obs"
	"github.com/noah-isme/backend-food/internal/pricing"
	"github.com/noah-isme/backend-food/internal/promotion"
	"github.com/noah-isme/backend-food/internal/shipping"
)

var (
	// ErrEmptyCart is returned when the customer has nothing to check out.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrReferenceNotFound is returned when a cart line points at a food,
	// size option or store that no longer exists.
	ErrReferenceNotFound = errors.New("cart reference not found")
	// ErrFoodUnavailable is returned when a food has been switched off.
	ErrFoodUnavailable = errors.New("food is not available")
	// ErrStoreClosed is returned when a store in the cart is not taking orders.
	ErrStoreClosed = errors.New("store is closed")
	// ErrDiscountInvalid rejects client discount claims the server cannot honour.
	ErrDiscountInvalid = errors.New("invalid discount")
	// ErrTotalCeiling rejects orders above the configured sanity ceiling.
	ErrTotalCeiling = errors.New("order total exceeds the allowed maximum")
	// ErrInvalidInput rejects malformed request values.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrReceiverRequired is returned when no receiver details are known.
	ErrReceiverRequired = errors.New("receiver name, phone and address are required")
	// ErrInProgress is returned when another checkout of the same user holds the lock.
	ErrInProgress = errors.New("checkout already in progress")
	// ErrCartChanged is returned when the cart lines being checked out were
	// removed before the orders could be committed.
	ErrCartChanged = errors.New("cart changed during checkout")
)

// tolerance is the rounding slack allowed on client supplied amounts.
var tolerance = decimal.NewFromInt(1)

// Locker serializes checkouts of one user.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Quoter prices the delivery leg of one store.
type Quoter interface {
	Quote(ctx context.Context, origin, dest *shipping.Point) shipping.Quote
}

// Service turns a customer's cart into one order per store.
type Service struct {
	Store         db.Store
	Cart          *cart.Store
	Catalog       *catalog.Directory
	Fees          Quoter
	Bus           *events.Bus
	Locker        Locker
	LockTTL       time.Duration
	MaxOrderTotal decimal.Decimal
	Now           func() time.Time
	Logger        zerolog.Logger
}

// PlacedOrder is one persisted store order.
type PlacedOrder struct {
	Order        dbgen.Order
	Items        []dbgen.OrderItem
	Attributions []dbgen.OrderPromotion
	FeeSource    string
}

// Result is the outcome of a successful checkout.
type Result struct {
	GroupID uuid.UUID
	Orders  []PlacedOrder
}

type plannedItem struct {
	line   cart.Line
	food   catalog.Food
	option decimal.Decimal
}

type storePlan struct {
	info     catalog.StoreInfo
	items    []plannedItem
	subtotal decimal.Decimal
	quote    shipping.Quote
	shares   []Share
	summary  pricing.Summary
}

// Checkout places the orders for userID. Either every store order is
// persisted together with its lines and attributions and the cart lines are
// cleared, or nothing is written.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, in Input) (Result, error) {
	start := time.Now()
	req, err := in.parse()
	if err != nil {
		obs.CheckoutTotal.WithLabelValues("invalid").Inc()
		return Result{}, err
	}
	var res Result
	run := func(ctx context.Context) error {
		var err error
		res, err = s.checkout(ctx, userID, req)
		return err
	}
	if s.Locker != nil {
		err = s.Locker.WithLock(ctx, "checkout:user:"+userID.String(), s.lockTTL(), run)
		if errors.Is(err, lock.ErrNotAcquired) {
			err = ErrInProgress
		}
	} else {
		err = run(ctx)
	}
	obs.CheckoutDuration.Observe(obs.DurationMillis(time.Since(start)))
	obs.CheckoutTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return Result{}, err
	}
	obs.CheckoutOrdersCreated.Add(float64(len(res.Orders)))
	s.publish(ctx, userID, res)
	return res, nil
}

func (s *Service) checkout(ctx context.Context, userID uuid.UUID, req request) (Result, error) {
	log := s.Logger.With().Str("user_id", userID.String()).Logger()

	lines, err := s.Cart.Lines(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}
	grouping := cart.GroupByStore(lines)

	plans, total, err := s.price(ctx, grouping)
	if err != nil {
		return Result{}, err
	}
	subtotals := make(map[uuid.UUID]decimal.Decimal, len(plans))
	for _, p := range plans {
		subtotals[p.info.ID] = p.subtotal
	}

	applied, err := s.resolvePromotions(ctx, log, req, grouping, subtotals, total)
	if err != nil {
		return Result{}, err
	}

	if err := s.fillReceiver(ctx, userID, &req); err != nil {
		return Result{}, err
	}
	for _, p := range plans {
		p.quote = s.Fees.Quote(ctx, p.info.Location, req.dropoff)
	}

	shares := Allocate(subtotals, applied)
	for _, p := range plans {
		p.shares, p.summary = Settle(p.subtotal, p.quote.Fee, shares[p.info.ID])
		if p.summary.Clamped {
			log.Info().Str("store_id", p.info.ID.String()).
				Str("discount", p.summary.Effective.String()).
				Msg("checkout_discount_clamped")
		}
		if err := s.checkCeiling(p); err != nil {
			return Result{}, err
		}
	}

	return s.persist(ctx, userID, req, grouping, plans)
}

// price reads current prices for every cart line, store by store.
func (s *Service) price(ctx context.Context, grouping cart.Grouping) ([]*storePlan, decimal.Decimal, error) {
	plans := make([]*storePlan, 0, grouping.Len())
	total := decimal.Zero
	for _, storeID := range grouping.StoreIDs {
		info, err := s.Catalog.Store(ctx, storeID)
		if err != nil {
			return nil, decimal.Zero, referenceErr(err)
		}
		if !info.IsOpen {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrStoreClosed, info.Name)
		}
		plan := &storePlan{info: info, subtotal: decimal.Zero}
		lines := make([]pricing.Line, 0, len(grouping.Lines[storeID]))
		for _, line := range grouping.Lines[storeID] {
			food, err := s.Catalog.FoodForCheckout(ctx, line.FoodID)
			if err != nil {
				return nil, decimal.Zero, referenceErr(err)
			}
			if !food.IsAvailable {
				return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrFoodUnavailable, food.Name)
			}
			item := plannedItem{line: line, food: food, option: decimal.Zero}
			if line.SizeOptionID != nil {
				opt, err := s.Catalog.SizeOptionForCheckout(ctx, *line.SizeOptionID, line.FoodID)
				if err != nil {
					return nil, decimal.Zero, referenceErr(err)
				}
				item.option = opt.Price
			}
			plan.items = append(plan.items, item)
			lines = append(lines, pricing.Line{Quantity: line.Quantity, FoodPrice: food.Price, OptionPrice: item.option})
		}
		plan.subtotal = pricing.Subtotal(lines)
		total = total.Add(plan.subtotal)
		plans = append(plans, plan)
	}
	return plans, total, nil
}

// resolvePromotions validates the requested promotions against the amounts
// they apply to. Unusable promotions are skipped, never fatal.
func (s *Service) resolvePromotions(ctx context.Context, log zerolog.Logger, req request, grouping cart.Grouping, subtotals map[uuid.UUID]decimal.Decimal, total decimal.Decimal) ([]Applied, error) {
	now := s.now()
	applied := make([]Applied, 0, len(req.promoIDs))
	aggregate := decimal.Zero
	for _, promoID := range req.promoIDs {
		skip := func(reason string, err error) {
			obs.PromotionSkippedTotal.WithLabelValues(reason).Inc()
			log.Warn().Err(err).Str("promotion_id", promoID.String()).Str("reason", reason).Msg("checkout_promotion_skipped")
		}
		row, err := s.Store.GetPromotion(ctx, common.PGUUID(promoID))
		if err != nil {
			if db.IsNotFound(err) {
				skip("missing", err)
				continue
			}
			return nil, fmt.Errorf("load promotion: %w", err)
		}
		rule := promotion.RuleFromModel(row)

		amount := total
		storeID := uuid.Nil
		targets := grouping.StoreIDs
		if rule.Scope == promotion.ScopeStore {
			if rule.StoreID == nil {
				skip("invalid", promotion.ErrStoreRequired)
				continue
			}
			storeID = *rule.StoreID
			sub, ok := subtotals[storeID]
			if !ok {
				skip("scope", promotion.ErrScopeMismatch)
				continue
			}
			amount = sub
			targets = []uuid.UUID{storeID}
		}
		if err := rule.Validate(amount, storeID, now); err != nil {
			skip(promotion.SkipReason(err), err)
			continue
		}
		server := rule.CalculateDiscount(amount)
		a := Applied{Rule: rule, Server: server, Amount: server, Targets: targets}

		if d, ok := req.details[promoID]; ok {
			if d.amount != nil {
				if d.amount.IsNegative() || d.amount.GreaterThan(server.Add(tolerance)) {
					return nil, fmt.Errorf("%w: promotion %s claims %s, at most %s allowed", ErrDiscountInvalid, promoID, d.amount, server)
				}
				a.Amount = *d.amount
			}
			if rule.Scope == promotion.ScopeGlobal && len(d.storeIDs) > 0 {
				a.Targets, err = touched(grouping, d.storeIDs)
				if err != nil {
					return nil, err
				}
			}
		}
		if !a.Amount.IsPositive() {
			skip("zero", nil)
			continue
		}
		aggregate = aggregate.Add(a.Amount)
		applied = append(applied, a)
	}
	if req.discount != nil && req.discount.GreaterThan(aggregate.Add(tolerance)) {
		return nil, fmt.Errorf("%w: requested discount %s exceeds %s", ErrDiscountInvalid, req.discount, aggregate)
	}
	return applied, nil
}

// touched returns the checkout stores named by a promo detail in grouping order.
func touched(grouping cart.Grouping, named []uuid.UUID) ([]uuid.UUID, error) {
	want := make(map[uuid.UUID]bool, len(named))
	for _, id := range named {
		if _, ok := grouping.Lines[id]; !ok {
			return nil, fmt.Errorf("%w: store %s is not part of this checkout", ErrDiscountInvalid, id)
		}
		want[id] = true
	}
	out := make([]uuid.UUID, 0, len(want))
	for _, id := range grouping.StoreIDs {
		if want[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// fillReceiver completes receiver details and the drop-off point from the
// customer's profile.
func (s *Service) fillReceiver(ctx context.Context, userID uuid.UUID, req *request) error {
	needProfile := req.dropoff == nil || req.receiverName == "" || req.phone == "" || req.address == ""
	if needProfile {
		profile, err := s.Catalog.CustomerProfile(ctx, userID)
		switch {
		case err == nil:
			if req.receiverName == "" {
				req.receiverName = profile.FullName
			}
			if req.phone == "" {
				req.phone = profile.Phone
			}
			if req.address == "" {
				req.address = profile.Address
			}
			if req.dropoff == nil {
				req.dropoff = profile.Location
			}
		case errors.Is(err, catalog.ErrProfileNotFound):
		default:
			return err
		}
	}
	if req.receiverName == "" || req.phone == "" || req.address == "" {
		return ErrReceiverRequired
	}
	return nil
}

func (s *Service) checkCeiling(p *storePlan) error {
	ceiling := s.MaxOrderTotal
	sum := p.summary
	if sum.Subtotal.IsNegative() || sum.Discount.IsNegative() || sum.Total.IsNegative() {
		return fmt.Errorf("%w: negative amount for store %s", ErrDiscountInvalid, p.info.ID)
	}
	if ceiling.IsPositive() && (sum.Subtotal.GreaterThan(ceiling) || sum.Discount.GreaterThan(ceiling) || sum.Total.GreaterThan(ceiling)) {
		return fmt.Errorf("%w: store %s", ErrTotalCeiling, p.info.ID)
	}
	return nil
}

// persist writes every store order in one transaction.
func (s *Service) persist(ctx context.Context, userID uuid.UUID, req request, grouping cart.Grouping, plans []*storePlan) (Result, error) {
	ids := make([]uuid.UUID, len(plans))
	for i := range ids {
		ids[i] = uuid.New()
	}
	groupID := ids[0]
	res := Result{GroupID: groupID, Orders: make([]PlacedOrder, 0, len(plans))}

	err := s.Store.ExecTx(ctx, func(q dbgen.Querier) error {
		res.Orders = res.Orders[:0]
		for i, p := range plans {
			placed, err := s.createOrder(ctx, q, ids[i], groupID, int32(i), userID, req, p)
			if err != nil {
				return err
			}
			res.Orders = append(res.Orders, placed)
		}
		lineIDs := grouping.LineIDs()
		cleared, err := s.Cart.Clear(ctx, q, userID, lineIDs)
		if err != nil {
			return err
		}
		if cleared != int64(len(lineIDs)) {
			return fmt.Errorf("%w: cleared %d of %d lines", ErrCartChanged, cleared, len(lineIDs))
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) createOrder(ctx context.Context, q dbgen.Querier, id, groupID uuid.UUID, position int32, userID uuid.UUID, req request, p *storePlan) (PlacedOrder, error) {
	params := dbgen.CreateOrderParams{
		ID:                 common.PGUUID(id),
		GroupID:            common.PGUUID(groupID),
		GroupPosition:      position,
		UserID:             common.PGUUID(userID),
		StoreID:            common.PGUUID(p.info.ID),
		PaymentMethod:      req.payment,
		Subtotal:           p.summary.Subtotal,
		ShippingFee:        p.summary.Shipping,
		TotalDiscount:      p.summary.Discount,
		TotalAfterDiscount: p.summary.Total,
		ReceiverName:       req.receiverName,
		ReceiverPhone:      req.phone,
		ShipAddress:        req.address,
		Note:               req.note,
	}
	if req.dropoff != nil {
		params.ShipLatitude = pgtype.Float8{Float64: req.dropoff.Lat, Valid: true}
		params.ShipLongitude = pgtype.Float8{Float64: req.dropoff.Lon, Valid: true}
	}
	if p.quote.DistanceKm != nil {
		params.RouteDistanceKm = decimal.NewNullDecimal(*p.quote.DistanceKm)
	}
	if p.quote.Polyline != nil {
		params.RoutePolyline = pgtype.Text{String: *p.quote.Polyline, Valid: true}
	}
	if _, err := q.CreateOrder(ctx, params); err != nil {
		return PlacedOrder{}, fmt.Errorf("create order: %w", err)
	}

	placed := PlacedOrder{FeeSource: p.quote.Source}
	for _, item := range p.items {
		arg := dbgen.CreateOrderItemParams{
			OrderID:     params.ID,
			FoodID:      common.PGUUID(item.food.ID),
			Quantity:    item.line.Quantity,
			FoodPrice:   item.food.Price,
			OptionPrice: item.option,
			Note:        item.line.Note,
		}
		if item.line.SizeOptionID != nil {
			arg.SizeOptionID = common.PGUUID(*item.line.SizeOptionID)
		}
		row, err := q.CreateOrderItem(ctx, arg)
		if err != nil {
			return PlacedOrder{}, fmt.Errorf("create order item: %w", err)
		}
		placed.Items = append(placed.Items, row)
	}
	for _, share := range p.shares {
		row, err := q.InsertOrderPromotion(ctx, dbgen.InsertOrderPromotionParams{
			OrderID:       params.ID,
			PromotionID:   common.PGUUID(share.PromotionID),
			AppliedAmount: share.Amount,
			Note:          "checkout",
		})
		if err != nil {
			return PlacedOrder{}, fmt.Errorf("attach promotion: %w", err)
		}
		placed.Attributions = append(placed.Attributions, row)
	}
	order, err := ledger.Recompute(ctx, q, params.ID)
	if err != nil {
		return PlacedOrder{}, err
	}
	placed.Order = order
	return placed, nil
}

func (s *Service) publish(ctx context.Context, userID uuid.UUID, res Result) {
	orderIDs := make([]string, 0, len(res.Orders))
	for _, o := range res.Orders {
		orderIDs = append(orderIDs, common.UUIDString(o.Order.ID))
		s.Bus.Publish(ctx, events.TopicOrderCreated, o.Order.ID, map[string]any{
			"order_id":             common.UUIDString(o.Order.ID),
			"group_id":             res.GroupID.String(),
			"store_id":             common.UUIDString(o.Order.StoreID),
			"user_id":              userID.String(),
			"subtotal":             o.Order.Subtotal,
			"shipping_fee":         o.Order.ShippingFee,
			"total_discount":       o.Order.TotalDiscount,
			"total_after_discount": o.Order.TotalAfterDiscount,
		})
	}
	s.Bus.Publish(ctx, events.TopicCheckoutCompleted, common.PGUUID(res.GroupID), map[string]any{
		"group_id":  res.GroupID.String(),
		"user_id":   userID.String(),
		"order_ids": orderIDs,
	})
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return 15 * time.Second
}

func referenceErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrStoreNotFound),
		errors.Is(err, catalog.ErrFoodNotFound),
		errors.Is(err, catalog.ErrSizeOptionNotFound):
		return fmt.Errorf("%w: %v", ErrReferenceNotFound, err)
	default:
		return err
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrReferenceNotFound):
		return "not_found"
	case errors.Is(err, ErrDiscountInvalid), errors.Is(err, ErrTotalCeiling),
		errors.Is(err, ErrInvalidInput), errors.Is(err, ErrReceiverRequired),
		errors.Is(err, ErrFoodUnavailable), errors.Is(err, ErrStoreClosed):
		return "invalid"
	case errors.Is(err, ErrCartChanged):
		return "conflict"
	default:
		return "error"
	}
}
