package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/db/dbtest"
)

var (
	windowStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

func newService(t *testing.T) (*Service, *dbtest.Fake, common.Identity, dbgen.Store) {
	t.Helper()
	fake := dbtest.New()
	manager := uuid.New()
	store := fake.AddStore(dbgen.Store{ManagerID: common.PGUUID(manager), Name: "Pho 24"})
	svc := &Service{Q: fake, Now: func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }}
	return svc, fake, common.Identity{UserID: manager.String(), Role: common.RoleStore}, store
}

func percentInput() Input {
	capAmount := dec("20000")
	return Input{
		Name:              "Lunch 50",
		DiscountType:      "PERCENT",
		DiscountValue:     dec("50"),
		MaxDiscountAmount: &capAmount,
		MinimumPay:        dec("0"),
		StartDate:         windowStart,
		EndDate:           windowEnd,
	}
}

func TestStoreManagerCreateForcesOwnStore(t *testing.T) {
	svc, _, manager, store := newService(t)
	in := percentInput()
	in.Scope = "GLOBAL"

	promo, err := svc.Create(context.Background(), manager, in)
	require.NoError(t, err)
	require.Equal(t, dbgen.PromotionScopeSTORE, promo.Scope)
	require.Equal(t, store.ID, promo.StoreID)
	require.True(t, promo.IsActive)
}

func TestCreateRejectsCapOnAmount(t *testing.T) {
	svc, _, _, _ := newService(t)
	in := percentInput()
	in.DiscountType = "AMOUNT"
	in.DiscountValue = dec("10000")

	_, err := svc.Create(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleAdmin}, in)
	require.ErrorIs(t, err, ErrCapOnAmount)
}

func TestCreateValidatesPayload(t *testing.T) {
	svc, _, manager, _ := newService(t)
	in := percentInput()
	in.Name = ""
	_, err := svc.Create(context.Background(), manager, in)
	require.Error(t, err)
	require.True(t, common.IsAppError(err))
}

func TestAdminCreatesGlobalByDefault(t *testing.T) {
	svc, _, _, _ := newService(t)
	promo, err := svc.Create(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleAdmin}, percentInput())
	require.NoError(t, err)
	require.Equal(t, dbgen.PromotionScopeGLOBAL, promo.Scope)
	require.False(t, promo.StoreID.Valid)
}

func TestCustomerCannotManage(t *testing.T) {
	svc, _, _, _ := newService(t)
	_, err := svc.Create(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleCustomer}, percentInput())
	require.ErrorIs(t, err, ErrForbidden)
}

func TestManagerCannotSeeOtherStorePromotion(t *testing.T) {
	svc, fake, manager, _ := newService(t)
	other := fake.AddStore(dbgen.Store{ManagerID: common.PGUUID(uuid.New()), Name: "Banh Mi"})
	promo := fake.AddPromotion(dbgen.Promotion{
		Name: "other", Scope: dbgen.PromotionScopeSTORE, StoreID: other.ID,
		DiscountType: dbgen.DiscountKindAMOUNT, DiscountValue: dec("5000"),
		StartDate: timestamptz(windowStart), EndDate: timestamptz(windowEnd), IsActive: true,
	})

	_, err := svc.Get(context.Background(), manager, promo.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), manager, promo.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateKeepsScope(t *testing.T) {
	svc, _, manager, store := newService(t)
	promo, err := svc.Create(context.Background(), manager, percentInput())
	require.NoError(t, err)

	in := percentInput()
	in.Name = "Dinner 10"
	in.DiscountValue = dec("10")
	in.Scope = "GLOBAL"
	updated, err := svc.Update(context.Background(), manager, promo.ID, in)
	require.NoError(t, err)
	require.Equal(t, "Dinner 10", updated.Name)
	require.Equal(t, dbgen.PromotionScopeSTORE, updated.Scope)
	require.Equal(t, store.ID, updated.StoreID)
}

func TestDeleteInUse(t *testing.T) {
	svc, fake, manager, store := newService(t)
	promo, err := svc.Create(context.Background(), manager, percentInput())
	require.NoError(t, err)
	order := fake.AddOrder(dbgen.Order{StoreID: store.ID, Subtotal: dec("10000"), ShippingFee: dec("15000"), TotalAfterDiscount: dec("25000")})
	fake.AddOrderPromotion(dbgen.OrderPromotion{OrderID: order.ID, PromotionID: promo.ID, AppliedAmount: dec("1000")})

	require.ErrorIs(t, svc.Delete(context.Background(), manager, promo.ID), ErrInUse)
}

func TestListScopedToManagerStore(t *testing.T) {
	svc, fake, manager, _ := newService(t)
	_, err := svc.Create(context.Background(), manager, percentInput())
	require.NoError(t, err)
	fake.AddPromotion(dbgen.Promotion{
		Name: "global", Scope: dbgen.PromotionScopeGLOBAL,
		DiscountType: dbgen.DiscountKindAMOUNT, DiscountValue: dec("5000"),
		StartDate: timestamptz(windowStart), EndDate: timestamptz(windowEnd), IsActive: true,
	})

	mine, _, err := svc.List(context.Background(), manager, ListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, _, err := svc.List(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleAdmin}, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	globals, _, err := svc.List(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleAdmin}, ListFilter{Scope: "GLOBAL"})
	require.NoError(t, err)
	require.Len(t, globals, 1)

	_, _, err = svc.List(context.Background(), common.Identity{UserID: uuid.NewString(), Role: common.RoleAdmin}, ListFilter{Scope: "REGION"})
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestListCountsAcrossPages(t *testing.T) {
	svc, _, manager, _ := newService(t)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), manager, percentInput())
		require.NoError(t, err)
	}

	page, total, err := svc.List(context.Background(), manager, ListFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.EqualValues(t, 3, total)
}

func TestAvailableFiltersWindowAndStore(t *testing.T) {
	svc, fake, manager, store := newService(t)
	_, err := svc.Create(context.Background(), manager, percentInput())
	require.NoError(t, err)
	fake.AddPromotion(dbgen.Promotion{
		Name: "expired", Scope: dbgen.PromotionScopeGLOBAL,
		DiscountType: dbgen.DiscountKindAMOUNT, DiscountValue: dec("5000"),
		StartDate: timestamptz(windowStart), EndDate: timestamptz(windowStart.Add(time.Hour)), IsActive: true,
	})

	items, err := svc.Available(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.Available(context.Background(), pgtype.UUID{})
	require.NoError(t, err)
	require.Empty(t, items)
}
