// Package dbtest provides an in-memory implementation of db.Store for unit
// tests. Transactions work on a copy of the state that is swapped in only when
// the callback succeeds, so rollback semantics match postgres.
package dbtest

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

type state struct {
	stores          map[uuid.UUID]dbgen.Store
	profiles        map[uuid.UUID]dbgen.CustomerProfile
	foods           map[uuid.UUID]dbgen.Food
	sizeOptions     map[uuid.UUID]dbgen.SizeOption
	cartItems       map[uuid.UUID]dbgen.CartItem
	promotions      map[uuid.UUID]dbgen.Promotion
	orders          map[uuid.UUID]dbgen.Order
	orderItems      []dbgen.OrderItem
	orderPromotions []dbgen.OrderPromotion
	events          []dbgen.DomainEvent
}

func newState() *state {
	return &state{
		stores:      make(map[uuid.UUID]dbgen.Store),
		profiles:    make(map[uuid.UUID]dbgen.CustomerProfile),
		foods:       make(map[uuid.UUID]dbgen.Food),
		sizeOptions: make(map[uuid.UUID]dbgen.SizeOption),
		cartItems:   make(map[uuid.UUID]dbgen.CartItem),
		promotions:  make(map[uuid.UUID]dbgen.Promotion),
		orders:      make(map[uuid.UUID]dbgen.Order),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.stores {
		out.stores[k] = v
	}
	for k, v := range s.profiles {
		out.profiles[k] = v
	}
	for k, v := range s.foods {
		out.foods[k] = v
	}
	for k, v := range s.sizeOptions {
		out.sizeOptions[k] = v
	}
	for k, v := range s.cartItems {
		out.cartItems[k] = v
	}
	for k, v := range s.promotions {
		out.promotions[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	out.orderItems = append([]dbgen.OrderItem(nil), s.orderItems...)
	out.orderPromotions = append([]dbgen.OrderPromotion(nil), s.orderPromotions...)
	out.events = append([]dbgen.DomainEvent(nil), s.events...)
	return out
}

type failure struct {
	nth int
	err error
}

// Fake is an in-memory db.Store.
type Fake struct {
	*view

	mu    sync.Mutex
	txMu  sync.Mutex
	st    *state
	clock time.Time
	fails map[string]failure
	calls map[string]int

	// TxCount counts committed and rolled back transactions.
	TxCount int
}

// New returns an empty fake store.
func New() *Fake {
	f := &Fake{
		st:    newState(),
		clock: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
		fails: make(map[string]failure),
		calls: make(map[string]int),
	}
	f.view = &view{f: f}
	return f
}

// FailOn makes the nth call (1-based, counted from now) of method return err.
func (f *Fake) FailOn(method string, nth int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails[method] = failure{nth: nth, err: err}
	f.calls[method] = 0
}

// Calls reports how many times method has been invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// ExecTx runs fn against a private copy of the state. Transactions are
// serialized, mirroring the row locks taken by the real queries.
func (f *Fake) ExecTx(ctx context.Context, fn func(q dbgen.Querier) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	staged := f.st.clone()
	f.TxCount++
	f.mu.Unlock()

	if err := fn(&view{f: f, st: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.st = staged
	f.mu.Unlock()
	return nil
}

// tick returns a strictly increasing timestamp. Callers hold f.mu.
func (f *Fake) tick() pgtype.Timestamptz {
	f.clock = f.clock.Add(time.Millisecond)
	return pgtype.Timestamptz{Time: f.clock, Valid: true}
}

func (f *Fake) hook(method string) error {
	f.calls[method]++
	if fl, ok := f.fails[method]; ok && f.calls[method] == fl.nth {
		return fl.err
	}
	return nil
}

// Seeding helpers. Zero ids are replaced with fresh ones.

func (f *Fake) AddStore(s dbgen.Store) dbgen.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = ensureID(s.ID)
	if !s.CreatedAt.Valid {
		s.CreatedAt = f.tick()
	}
	f.st.stores[key(s.ID)] = s
	return s
}

func (f *Fake) AddCustomerProfile(p dbgen.CustomerProfile) dbgen.CustomerProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.profiles[key(p.UserID)] = p
	return p
}

func (f *Fake) AddFood(food dbgen.Food) dbgen.Food {
	f.mu.Lock()
	defer f.mu.Unlock()
	food.ID = ensureID(food.ID)
	if !food.CreatedAt.Valid {
		food.CreatedAt = f.tick()
	}
	f.st.foods[key(food.ID)] = food
	return food
}

func (f *Fake) AddSizeOption(o dbgen.SizeOption) dbgen.SizeOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = ensureID(o.ID)
	f.st.sizeOptions[key(o.ID)] = o
	return o
}

func (f *Fake) AddCartItem(item dbgen.CartItem) dbgen.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = ensureID(item.ID)
	if !item.CreatedAt.Valid {
		item.CreatedAt = f.tick()
	}
	f.st.cartItems[key(item.ID)] = item
	return item
}

func (f *Fake) AddPromotion(p dbgen.Promotion) dbgen.Promotion {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = ensureID(p.ID)
	if !p.CreatedAt.Valid {
		p.CreatedAt = f.tick()
		p.UpdatedAt = p.CreatedAt
	}
	f.st.promotions[key(p.ID)] = p
	return p
}

func (f *Fake) AddOrder(o dbgen.Order) dbgen.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = ensureID(o.ID)
	if !o.GroupID.Valid {
		o.GroupID = o.ID
	}
	if o.OrderStatus == "" {
		o.OrderStatus = dbgen.OrderStatusAwaitingConfirmation
	}
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = dbgen.DeliveryStatusAwaitingConfirmation
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = dbgen.PaymentMethodCash
	}
	if o.RefundStatus == "" {
		o.RefundStatus = dbgen.RefundStatusNone
	}
	if !o.CreatedAt.Valid {
		o.CreatedAt = f.tick()
		o.UpdatedAt = o.CreatedAt
	}
	f.st.orders[key(o.ID)] = o
	return o
}

func (f *Fake) AddOrderItem(it dbgen.OrderItem) dbgen.OrderItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	it.ID = ensureID(it.ID)
	f.st.orderItems = append(f.st.orderItems, it)
	return it
}

func (f *Fake) AddOrderPromotion(op dbgen.OrderPromotion) dbgen.OrderPromotion {
	f.mu.Lock()
	defer f.mu.Unlock()
	op.ID = ensureID(op.ID)
	if !op.CreatedAt.Valid {
		op.CreatedAt = f.tick()
		op.UpdatedAt = op.CreatedAt
	}
	f.st.orderPromotions = append(f.st.orderPromotions, op)
	return op
}

// Snapshot accessors.

func (f *Fake) Orders() []dbgen.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dbgen.Order, 0, len(f.st.orders))
	for _, o := range f.st.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return lessOrder(out[i], out[j]) })
	return out
}

func (f *Fake) Order(id pgtype.UUID) (dbgen.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.st.orders[key(id)]
	return o, ok
}

func (f *Fake) OrderItems(orderID pgtype.UUID) []dbgen.OrderItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbgen.OrderItem
	for _, it := range f.st.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (f *Fake) OrderPromotions(orderID pgtype.UUID) []dbgen.OrderPromotion {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbgen.OrderPromotion
	for _, op := range f.st.orderPromotions {
		if op.OrderID == orderID {
			out = append(out, op)
		}
	}
	return out
}

func (f *Fake) CartItems(userID pgtype.UUID) []dbgen.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbgen.CartItem
	for _, it := range f.st.cartItems {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out
}

func (f *Fake) Events() []dbgen.DomainEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dbgen.DomainEvent(nil), f.st.events...)
}

// view implements dbgen.Querier over either the committed state or a staged
// transaction copy.
type view struct {
	f  *Fake
	st *state
}

var _ dbgen.Querier = (*view)(nil)

func (v *view) begin(method string) (*state, func(), error) {
	v.f.mu.Lock()
	unlock := v.f.mu.Unlock
	if err := v.f.hook(method); err != nil {
		unlock()
		return nil, func() {}, err
	}
	st := v.st
	if st == nil {
		st = v.f.st
	}
	return st, unlock, nil
}

func (v *view) GetStoreByID(ctx context.Context, id pgtype.UUID) (dbgen.Store, error) {
	st, done, err := v.begin("GetStoreByID")
	if err != nil {
		return dbgen.Store{}, err
	}
	defer done()
	if s, ok := st.stores[key(id)]; ok {
		return s, nil
	}
	return dbgen.Store{}, pgx.ErrNoRows
}

func (v *view) GetStoreByManager(ctx context.Context, managerID pgtype.UUID) (dbgen.Store, error) {
	st, done, err := v.begin("GetStoreByManager")
	if err != nil {
		return dbgen.Store{}, err
	}
	defer done()
	for _, s := range st.stores {
		if s.ManagerID == managerID {
			return s, nil
		}
	}
	return dbgen.Store{}, pgx.ErrNoRows
}

func (v *view) GetCustomerProfile(ctx context.Context, userID pgtype.UUID) (dbgen.CustomerProfile, error) {
	st, done, err := v.begin("GetCustomerProfile")
	if err != nil {
		return dbgen.CustomerProfile{}, err
	}
	defer done()
	if p, ok := st.profiles[key(userID)]; ok {
		return p, nil
	}
	return dbgen.CustomerProfile{}, pgx.ErrNoRows
}

func (v *view) GetFood(ctx context.Context, id pgtype.UUID) (dbgen.Food, error) {
	st, done, err := v.begin("GetFood")
	if err != nil {
		return dbgen.Food{}, err
	}
	defer done()
	if food, ok := st.foods[key(id)]; ok {
		return food, nil
	}
	return dbgen.Food{}, pgx.ErrNoRows
}

func (v *view) GetSizeOption(ctx context.Context, id pgtype.UUID) (dbgen.SizeOption, error) {
	st, done, err := v.begin("GetSizeOption")
	if err != nil {
		return dbgen.SizeOption{}, err
	}
	defer done()
	if o, ok := st.sizeOptions[key(id)]; ok {
		return o, nil
	}
	return dbgen.SizeOption{}, pgx.ErrNoRows
}

func (v *view) ListCartLines(ctx context.Context, userID pgtype.UUID) ([]dbgen.ListCartLinesRow, error) {
	st, done, err := v.begin("ListCartLines")
	if err != nil {
		return nil, err
	}
	defer done()
	items := make([]dbgen.CartItem, 0)
	for _, it := range st.cartItems {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Time.Equal(items[j].CreatedAt.Time) {
			return items[i].CreatedAt.Time.Before(items[j].CreatedAt.Time)
		}
		return bytes.Compare(items[i].ID.Bytes[:], items[j].ID.Bytes[:]) < 0
	})
	var rows []dbgen.ListCartLinesRow
	for _, it := range items {
		food, ok := st.foods[key(it.FoodID)]
		if !ok {
			continue
		}
		rows = append(rows, dbgen.ListCartLinesRow{
			ID:           it.ID,
			FoodID:       it.FoodID,
			SizeOptionID: it.SizeOptionID,
			Quantity:     it.Quantity,
			Note:         it.Note,
			StoreID:      food.StoreID,
		})
	}
	return rows, nil
}

func (v *view) DeleteCartItems(ctx context.Context, arg dbgen.DeleteCartItemsParams) (int64, error) {
	st, done, err := v.begin("DeleteCartItems")
	if err != nil {
		return 0, err
	}
	defer done()
	var n int64
	for _, id := range arg.Ids {
		it, ok := st.cartItems[key(id)]
		if ok && it.UserID == arg.UserID {
			delete(st.cartItems, key(id))
			n++
		}
	}
	return n, nil
}

func (v *view) GetPromotion(ctx context.Context, id pgtype.UUID) (dbgen.Promotion, error) {
	st, done, err := v.begin("GetPromotion")
	if err != nil {
		return dbgen.Promotion{}, err
	}
	defer done()
	if p, ok := st.promotions[key(id)]; ok {
		return p, nil
	}
	return dbgen.Promotion{}, pgx.ErrNoRows
}

func (v *view) CreatePromotion(ctx context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error) {
	st, done, err := v.begin("CreatePromotion")
	if err != nil {
		return dbgen.Promotion{}, err
	}
	defer done()
	p := dbgen.Promotion{
		ID:                newID(),
		Name:              arg.Name,
		Scope:             arg.Scope,
		StoreID:           arg.StoreID,
		DiscountType:      arg.DiscountType,
		DiscountValue:     arg.DiscountValue,
		MaxDiscountAmount: arg.MaxDiscountAmount,
		MinimumPay:        arg.MinimumPay,
		StartDate:         arg.StartDate,
		EndDate:           arg.EndDate,
		IsActive:          arg.IsActive,
		CreatedAt:         v.f.tick(),
	}
	p.UpdatedAt = p.CreatedAt
	if err := checkPromotion(p); err != nil {
		return dbgen.Promotion{}, err
	}
	st.promotions[key(p.ID)] = p
	return p, nil
}

func (v *view) UpdatePromotion(ctx context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error) {
	st, done, err := v.begin("UpdatePromotion")
	if err != nil {
		return dbgen.Promotion{}, err
	}
	defer done()
	p, ok := st.promotions[key(arg.ID)]
	if !ok {
		return dbgen.Promotion{}, pgx.ErrNoRows
	}
	p.Name = arg.Name
	p.DiscountType = arg.DiscountType
	p.DiscountValue = arg.DiscountValue
	p.MaxDiscountAmount = arg.MaxDiscountAmount
	p.MinimumPay = arg.MinimumPay
	p.StartDate = arg.StartDate
	p.EndDate = arg.EndDate
	p.IsActive = arg.IsActive
	p.UpdatedAt = v.f.tick()
	if err := checkPromotion(p); err != nil {
		return dbgen.Promotion{}, err
	}
	st.promotions[key(p.ID)] = p
	return p, nil
}

func (v *view) DeletePromotion(ctx context.Context, id pgtype.UUID) (int64, error) {
	st, done, err := v.begin("DeletePromotion")
	if err != nil {
		return 0, err
	}
	defer done()
	if _, ok := st.promotions[key(id)]; !ok {
		return 0, nil
	}
	for _, op := range st.orderPromotions {
		if op.PromotionID == id {
			return 0, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_promotions_promotion_id_fkey"}
		}
	}
	delete(st.promotions, key(id))
	return 1, nil
}

func (v *view) ListPromotions(ctx context.Context, arg dbgen.ListPromotionsParams) ([]dbgen.Promotion, error) {
	st, done, err := v.begin("ListPromotions")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Promotion
	for _, p := range st.promotions {
		if arg.StoreID.Valid && p.StoreID != arg.StoreID {
			continue
		}
		if arg.Scope.Valid && p.Scope != arg.Scope.PromotionScope {
			continue
		}
		out = append(out, p)
	}
	sortPromotions(out)
	return page(out, int(arg.RowOffset), int(arg.RowLimit)), nil
}

func (v *view) CountPromotions(ctx context.Context, arg dbgen.CountPromotionsParams) (int64, error) {
	st, done, err := v.begin("CountPromotions")
	if err != nil {
		return 0, err
	}
	defer done()
	var n int64
	for _, p := range st.promotions {
		if arg.StoreID.Valid && p.StoreID != arg.StoreID {
			continue
		}
		if arg.Scope.Valid && p.Scope != arg.Scope.PromotionScope {
			continue
		}
		n++
	}
	return n, nil
}

func (v *view) ListAvailablePromotions(ctx context.Context, arg dbgen.ListAvailablePromotionsParams) ([]dbgen.Promotion, error) {
	st, done, err := v.begin("ListAvailablePromotions")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Promotion
	for _, p := range st.promotions {
		if !p.IsActive || p.StartDate.Time.After(arg.Now.Time) || p.EndDate.Time.Before(arg.Now.Time) {
			continue
		}
		if p.Scope == dbgen.PromotionScopeSTORE && p.StoreID != arg.StoreID {
			continue
		}
		out = append(out, p)
	}
	sortPromotions(out)
	return out, nil
}

func (v *view) CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	st, done, err := v.begin("CreateOrder")
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	if _, exists := st.orders[key(arg.ID)]; exists {
		return dbgen.Order{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "orders_pkey"}
	}
	now := v.f.tick()
	o := dbgen.Order{
		ID:                 arg.ID,
		GroupID:            arg.GroupID,
		GroupPosition:      arg.GroupPosition,
		UserID:             arg.UserID,
		StoreID:            arg.StoreID,
		OrderStatus:        dbgen.OrderStatusAwaitingConfirmation,
		DeliveryStatus:     dbgen.DeliveryStatusAwaitingConfirmation,
		PaymentMethod:      arg.PaymentMethod,
		Subtotal:           arg.Subtotal,
		ShippingFee:        arg.ShippingFee,
		TotalDiscount:      arg.TotalDiscount,
		TotalAfterDiscount: arg.TotalAfterDiscount,
		ReceiverName:       arg.ReceiverName,
		ReceiverPhone:      arg.ReceiverPhone,
		ShipAddress:        arg.ShipAddress,
		ShipLatitude:       arg.ShipLatitude,
		ShipLongitude:      arg.ShipLongitude,
		RouteDistanceKm:    arg.RouteDistanceKm,
		RoutePolyline:      arg.RoutePolyline,
		Note:               arg.Note,
		RefundStatus:       dbgen.RefundStatusNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := checkOrderTotals(o); err != nil {
		return dbgen.Order{}, err
	}
	st.orders[key(o.ID)] = o
	return o, nil
}

func (v *view) CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) (dbgen.OrderItem, error) {
	st, done, err := v.begin("CreateOrderItem")
	if err != nil {
		return dbgen.OrderItem{}, err
	}
	defer done()
	if _, ok := st.orders[key(arg.OrderID)]; !ok {
		return dbgen.OrderItem{}, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_items_order_id_fkey"}
	}
	it := dbgen.OrderItem{
		ID:           newID(),
		OrderID:      arg.OrderID,
		FoodID:       arg.FoodID,
		SizeOptionID: arg.SizeOptionID,
		Quantity:     arg.Quantity,
		FoodPrice:    arg.FoodPrice,
		OptionPrice:  arg.OptionPrice,
		Note:         arg.Note,
	}
	st.orderItems = append(st.orderItems, it)
	return it, nil
}

func (v *view) GetOrder(ctx context.Context, id pgtype.UUID) (dbgen.Order, error) {
	return v.getOrder("GetOrder", id)
}

func (v *view) GetOrderForUpdate(ctx context.Context, id pgtype.UUID) (dbgen.Order, error) {
	return v.getOrder("GetOrderForUpdate", id)
}

func (v *view) getOrder(method string, id pgtype.UUID) (dbgen.Order, error) {
	st, done, err := v.begin(method)
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	if o, ok := st.orders[key(id)]; ok {
		return o, nil
	}
	return dbgen.Order{}, pgx.ErrNoRows
}

func (v *view) ListOrdersByGroup(ctx context.Context, groupID pgtype.UUID) ([]dbgen.Order, error) {
	return v.listGroup("ListOrdersByGroup", groupID)
}

func (v *view) ListOrdersByGroupForUpdate(ctx context.Context, groupID pgtype.UUID) ([]dbgen.Order, error) {
	return v.listGroup("ListOrdersByGroupForUpdate", groupID)
}

func (v *view) listGroup(method string, groupID pgtype.UUID) ([]dbgen.Order, error) {
	st, done, err := v.begin(method)
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Order
	for _, o := range st.orders {
		if o.GroupID == groupID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupPosition != out[j].GroupPosition {
			return out[i].GroupPosition < out[j].GroupPosition
		}
		return bytes.Compare(out[i].ID.Bytes[:], out[j].ID.Bytes[:]) < 0
	})
	return out, nil
}

func (v *view) ListOrdersForUser(ctx context.Context, arg dbgen.ListOrdersForUserParams) ([]dbgen.Order, error) {
	st, done, err := v.begin("ListOrdersForUser")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Order
	for _, o := range st.orders {
		if o.UserID == arg.UserID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return page(out, int(arg.Offset), int(arg.Limit)), nil
}

func (v *view) CountOrdersForUser(ctx context.Context, userID pgtype.UUID) (int64, error) {
	st, done, err := v.begin("CountOrdersForUser")
	if err != nil {
		return 0, err
	}
	defer done()
	var n int64
	for _, o := range st.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (v *view) ListOrdersForStore(ctx context.Context, arg dbgen.ListOrdersForStoreParams) ([]dbgen.Order, error) {
	st, done, err := v.begin("ListOrdersForStore")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Order
	for _, o := range st.orders {
		if o.StoreID == arg.StoreID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return page(out, int(arg.Offset), int(arg.Limit)), nil
}

func (v *view) CountOrdersForStore(ctx context.Context, storeID pgtype.UUID) (int64, error) {
	st, done, err := v.begin("CountOrdersForStore")
	if err != nil {
		return 0, err
	}
	defer done()
	var n int64
	for _, o := range st.orders {
		if o.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (v *view) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]dbgen.OrderItem, error) {
	st, done, err := v.begin("ListOrderItems")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.OrderItem
	for _, it := range st.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (v *view) UpdateOrderStatus(ctx context.Context, arg dbgen.UpdateOrderStatusParams) (dbgen.Order, error) {
	st, done, err := v.begin("UpdateOrderStatus")
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	o, ok := st.orders[key(arg.ID)]
	if !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	o.OrderStatus = arg.OrderStatus
	o.UpdatedAt = v.f.tick()
	st.orders[key(o.ID)] = o
	return o, nil
}

func (v *view) CancelOrder(ctx context.Context, arg dbgen.CancelOrderParams) (dbgen.Order, error) {
	st, done, err := v.begin("CancelOrder")
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	o, ok := st.orders[key(arg.ID)]
	if !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	o.OrderStatus = dbgen.OrderStatusCancelled
	o.CancelReason = arg.CancelReason
	o.CancelledAt = arg.CancelledAt
	o.CancelledByRole = arg.CancelledByRole
	o.RefundRequested = arg.RefundRequested
	o.RefundStatus = arg.RefundStatus
	o.RefundBankName = arg.RefundBankName
	o.RefundAccountNumber = arg.RefundAccountNumber
	o.RefundAccountName = arg.RefundAccountName
	o.UpdatedAt = v.f.tick()
	st.orders[key(o.ID)] = o
	return o, nil
}

func (v *view) UpdateDeliveryStatus(ctx context.Context, arg dbgen.UpdateDeliveryStatusParams) (dbgen.Order, error) {
	st, done, err := v.begin("UpdateDeliveryStatus")
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	o, ok := st.orders[key(arg.ID)]
	if !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	o.DeliveryStatus = arg.DeliveryStatus
	o.ShipperID = arg.ShipperID
	o.UpdatedAt = v.f.tick()
	st.orders[key(o.ID)] = o
	return o, nil
}

func (v *view) ListAvailableDeliveries(ctx context.Context, limit int32) ([]dbgen.Order, error) {
	st, done, err := v.begin("ListAvailableDeliveries")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.Order
	for _, o := range st.orders {
		if o.ShipperID.Valid || o.DeliveryStatus != dbgen.DeliveryStatusAwaitingConfirmation {
			continue
		}
		switch o.OrderStatus {
		case dbgen.OrderStatusConfirmed, dbgen.OrderStatusPreparing, dbgen.OrderStatusReady:
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessOrder(out[i], out[j]) })
	return page(out, 0, int(limit)), nil
}

func (v *view) UpdateOrderTotals(ctx context.Context, arg dbgen.UpdateOrderTotalsParams) (dbgen.Order, error) {
	st, done, err := v.begin("UpdateOrderTotals")
	if err != nil {
		return dbgen.Order{}, err
	}
	defer done()
	o, ok := st.orders[key(arg.ID)]
	if !ok {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	o.TotalDiscount = arg.TotalDiscount
	o.TotalAfterDiscount = arg.TotalAfterDiscount
	if err := checkOrderTotals(o); err != nil {
		return dbgen.Order{}, err
	}
	o.UpdatedAt = v.f.tick()
	st.orders[key(o.ID)] = o
	return o, nil
}

func (v *view) InsertOrderPromotion(ctx context.Context, arg dbgen.InsertOrderPromotionParams) (dbgen.OrderPromotion, error) {
	st, done, err := v.begin("InsertOrderPromotion")
	if err != nil {
		return dbgen.OrderPromotion{}, err
	}
	defer done()
	if _, ok := st.orders[key(arg.OrderID)]; !ok {
		return dbgen.OrderPromotion{}, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_promotions_order_id_fkey"}
	}
	if _, ok := st.promotions[key(arg.PromotionID)]; !ok {
		return dbgen.OrderPromotion{}, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_promotions_promotion_id_fkey"}
	}
	if arg.AppliedAmount.IsNegative() {
		return dbgen.OrderPromotion{}, &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "order_promotions_applied_amount_check"}
	}
	for _, op := range st.orderPromotions {
		if op.OrderID == arg.OrderID && op.PromotionID == arg.PromotionID {
			return dbgen.OrderPromotion{}, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "order_promotions_order_id_promotion_id_key"}
		}
	}
	now := v.f.tick()
	op := dbgen.OrderPromotion{
		ID:            newID(),
		OrderID:       arg.OrderID,
		PromotionID:   arg.PromotionID,
		AppliedAmount: arg.AppliedAmount,
		Note:          arg.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	st.orderPromotions = append(st.orderPromotions, op)
	return op, nil
}

func (v *view) GetOrderPromotion(ctx context.Context, arg dbgen.GetOrderPromotionParams) (dbgen.OrderPromotion, error) {
	st, done, err := v.begin("GetOrderPromotion")
	if err != nil {
		return dbgen.OrderPromotion{}, err
	}
	defer done()
	for _, op := range st.orderPromotions {
		if op.OrderID == arg.OrderID && op.PromotionID == arg.PromotionID {
			return op, nil
		}
	}
	return dbgen.OrderPromotion{}, pgx.ErrNoRows
}

func (v *view) UpdateOrderPromotion(ctx context.Context, arg dbgen.UpdateOrderPromotionParams) (dbgen.OrderPromotion, error) {
	st, done, err := v.begin("UpdateOrderPromotion")
	if err != nil {
		return dbgen.OrderPromotion{}, err
	}
	defer done()
	if arg.AppliedAmount.IsNegative() {
		return dbgen.OrderPromotion{}, &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "order_promotions_applied_amount_check"}
	}
	for i, op := range st.orderPromotions {
		if op.OrderID == arg.OrderID && op.PromotionID == arg.PromotionID {
			op.AppliedAmount = arg.AppliedAmount
			op.Note = arg.Note
			op.UpdatedAt = v.f.tick()
			st.orderPromotions[i] = op
			return op, nil
		}
	}
	return dbgen.OrderPromotion{}, pgx.ErrNoRows
}

func (v *view) DeleteOrderPromotion(ctx context.Context, arg dbgen.DeleteOrderPromotionParams) (int64, error) {
	st, done, err := v.begin("DeleteOrderPromotion")
	if err != nil {
		return 0, err
	}
	defer done()
	for i, op := range st.orderPromotions {
		if op.OrderID == arg.OrderID && op.PromotionID == arg.PromotionID {
			st.orderPromotions = append(st.orderPromotions[:i:i], st.orderPromotions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (v *view) ListOrderPromotions(ctx context.Context, orderID pgtype.UUID) ([]dbgen.OrderPromotion, error) {
	st, done, err := v.begin("ListOrderPromotions")
	if err != nil {
		return nil, err
	}
	defer done()
	var out []dbgen.OrderPromotion
	for _, op := range st.orderPromotions {
		if op.OrderID == orderID {
			out = append(out, op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time) })
	return out, nil
}

func (v *view) SumOrderPromotionAmounts(ctx context.Context, orderID pgtype.UUID) (decimal.Decimal, error) {
	st, done, err := v.begin("SumOrderPromotionAmounts")
	if err != nil {
		return decimal.Zero, err
	}
	defer done()
	total := decimal.Zero
	for _, op := range st.orderPromotions {
		if op.OrderID == orderID {
			total = total.Add(op.AppliedAmount)
		}
	}
	return total, nil
}

func (v *view) InsertDomainEvent(ctx context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error) {
	st, done, err := v.begin("InsertDomainEvent")
	if err != nil {
		return dbgen.DomainEvent{}, err
	}
	defer done()
	ev := dbgen.DomainEvent{
		ID:          newID(),
		Topic:       arg.Topic,
		AggregateID: arg.AggregateID,
		Payload:     append([]byte(nil), arg.Payload...),
		OccurredAt:  v.f.tick(),
	}
	st.events = append(st.events, ev)
	return ev, nil
}

func (v *view) GetDomainEvent(ctx context.Context, id pgtype.UUID) (dbgen.DomainEvent, error) {
	st, done, err := v.begin("GetDomainEvent")
	if err != nil {
		return dbgen.DomainEvent{}, err
	}
	defer done()
	for _, ev := range st.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return dbgen.DomainEvent{}, pgx.ErrNoRows
}

func (v *view) MarkDomainEventDelivered(ctx context.Context, id pgtype.UUID) error {
	st, done, err := v.begin("MarkDomainEventDelivered")
	if err != nil {
		return err
	}
	defer done()
	for i, ev := range st.events {
		if ev.ID == id {
			ev.DeliveredAt = v.f.tick()
			st.events[i] = ev
		}
	}
	return nil
}

func checkPromotion(p dbgen.Promotion) error {
	switch {
	case p.Scope == dbgen.PromotionScopeSTORE && !p.StoreID.Valid,
		p.Scope == dbgen.PromotionScopeGLOBAL && p.StoreID.Valid:
		return &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "promotions_scope_store_check"}
	case p.DiscountType == dbgen.DiscountKindAMOUNT && p.MaxDiscountAmount.Valid:
		return &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "promotions_cap_percent_only"}
	case p.EndDate.Time.Before(p.StartDate.Time):
		return &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "promotions_window_check"}
	}
	return nil
}

func checkOrderTotals(o dbgen.Order) error {
	if o.TotalAfterDiscount.LessThan(o.ShippingFee) || o.TotalDiscount.IsNegative() {
		return &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "orders_total_floor_check"}
	}
	return nil
}

func sortPromotions(ps []dbgen.Promotion) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Time.Equal(ps[j].CreatedAt.Time) {
			return ps[i].CreatedAt.Time.After(ps[j].CreatedAt.Time)
		}
		return bytes.Compare(ps[i].ID.Bytes[:], ps[j].ID.Bytes[:]) < 0
	})
}

func sortNewestFirst(os []dbgen.Order) {
	sort.Slice(os, func(i, j int) bool {
		if !os[i].CreatedAt.Time.Equal(os[j].CreatedAt.Time) {
			return os[i].CreatedAt.Time.After(os[j].CreatedAt.Time)
		}
		return os[i].GroupPosition < os[j].GroupPosition
	})
}

func lessOrder(a, b dbgen.Order) bool {
	if !a.CreatedAt.Time.Equal(b.CreatedAt.Time) {
		return a.CreatedAt.Time.Before(b.CreatedAt.Time)
	}
	return a.GroupPosition < b.GroupPosition
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func key(id pgtype.UUID) uuid.UUID {
	return uuid.UUID(id.Bytes)
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func ensureID(id pgtype.UUID) pgtype.UUID {
	if id.Valid {
		return id
	}
	return newID()
}
