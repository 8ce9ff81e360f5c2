package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db/dbtest"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

func TestGroupByStoreKeepsFirstSeenOrder(t *testing.T) {
	storeA, storeB := uuid.New(), uuid.New()
	lines := []Line{
		{ID: uuid.New(), StoreID: storeB, Quantity: 1},
		{ID: uuid.New(), StoreID: storeA, Quantity: 2},
		{ID: uuid.New(), StoreID: storeB, Quantity: 3},
	}

	g := GroupByStore(lines)

	require.Equal(t, []uuid.UUID{storeB, storeA}, g.StoreIDs)
	require.Len(t, g.Lines[storeB], 2)
	require.Equal(t, int32(3), g.Lines[storeB][1].Quantity)
	require.Equal(t, []uuid.UUID{lines[0].ID, lines[2].ID, lines[1].ID}, g.LineIDs())
}

func TestGroupByStoreEmpty(t *testing.T) {
	g := GroupByStore(nil)
	require.Zero(t, g.Len())
	require.Empty(t, g.LineIDs())
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func seedCart(t *testing.T) (*dbtest.Fake, uuid.UUID, dbgen.Food, dbgen.SizeOption) {
	t.Helper()
	fake := dbtest.New()
	store := fake.AddStore(dbgen.Store{ManagerID: common.PGUUID(uuid.New()), Name: "Com Tam"})
	food := fake.AddFood(dbgen.Food{StoreID: store.ID, Name: "Suon", Price: dec("45000")})
	opt := fake.AddSizeOption(dbgen.SizeOption{FoodID: food.ID, Name: "Large", Price: dec("10000")})
	user := uuid.New()
	fake.AddCartItem(dbgen.CartItem{UserID: common.PGUUID(user), FoodID: food.ID, SizeOptionID: opt.ID, Quantity: 2})
	fake.AddCartItem(dbgen.CartItem{UserID: common.PGUUID(user), FoodID: food.ID, Quantity: 1, Note: "no onion"})
	return fake, user, food, opt
}

func TestStoreLinesAndClear(t *testing.T) {
	fake, user, food, opt := seedCart(t)
	s := &Store{Q: fake}
	ctx := context.Background()

	lines, err := s.Lines(ctx, user)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, uuid.UUID(food.StoreID.Bytes), lines[0].StoreID)
	require.NotNil(t, lines[0].SizeOptionID)
	require.Equal(t, uuid.UUID(opt.ID.Bytes), *lines[0].SizeOptionID)
	require.Nil(t, lines[1].SizeOptionID)

	n, err := s.Clear(ctx, fake, user, []uuid.UUID{lines[0].ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Len(t, fake.CartItems(common.PGUUID(user)), 1)

	n, err = s.Clear(ctx, fake, user, nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGetHandlerGroupsByStore(t *testing.T) {
	fake, user, food, _ := seedCart(t)
	h := &Handler{Store: &Store{Q: fake}}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req = req.WithContext(common.WithIdentity(req.Context(), common.Identity{UserID: user.String(), Role: common.RoleCustomer}))
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			Stores []struct {
				StoreID string `json:"store_id"`
				Items   []struct {
					Quantity int32 `json:"quantity"`
				} `json:"items"`
			} `json:"stores"`
			ItemCount int `json:"item_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Data.ItemCount)
	require.Len(t, body.Data.Stores, 1)
	require.Equal(t, common.UUIDString(food.StoreID), body.Data.Stores[0].StoreID)
}

func TestGetHandlerRequiresIdentity(t *testing.T) {
	h := &Handler{Store: &Store{Q: dbtest.New()}}
	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
