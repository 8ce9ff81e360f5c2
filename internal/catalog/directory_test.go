package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/cache"
	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db/dbtest"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

func newDirectory(t *testing.T) (*Directory, *dbtest.Fake, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	fake := dbtest.New()
	return &Directory{Q: fake, Cache: NewCache(client, time.Minute)}, fake, mr
}

func addStore(fake *dbtest.Fake) dbgen.Store {
	return fake.AddStore(dbgen.Store{
		ManagerID: common.PGUUID(uuid.New()),
		Name:      "Bun Cha Huong Lien",
		Latitude:  pgtype.Float8{Float64: 10.7626, Valid: true},
		Longitude: pgtype.Float8{Float64: 106.6602, Valid: true},
		IsOpen:    true,
	})
}

func TestStoreIsCached(t *testing.T) {
	dir, fake, mr := newDirectory(t)
	row := addStore(fake)
	id := uuid.UUID(row.ID.Bytes)
	ctx := context.Background()

	first, err := dir.Store(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, first.Location)
	require.InDelta(t, 10.7626, first.Location.Lat, 1e-9)
	require.True(t, mr.Exists(cache.KeyStore(id)))
	ttl := mr.TTL(cache.KeyStore(id))
	require.Equal(t, time.Minute, ttl)

	fake.FailOn("GetStoreByID", 1, errors.New("database down"))
	second, err := dir.Store(ctx, id)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Zero(t, fake.Calls("GetStoreByID"))
}

func TestStoreByManagerPrimesStoreKey(t *testing.T) {
	dir, fake, mr := newDirectory(t)
	row := addStore(fake)

	info, err := dir.StoreByManager(context.Background(), uuid.UUID(row.ManagerID.Bytes))
	require.NoError(t, err)
	require.Equal(t, uuid.UUID(row.ID.Bytes), info.ID)
	require.True(t, mr.Exists(cache.KeyStore(info.ID)))
	require.True(t, mr.Exists(cache.KeyStoreByManager(info.ManagerID)))

	require.NoError(t, dir.Invalidate(context.Background(), info))
	require.False(t, mr.Exists(cache.KeyStore(info.ID)))
	require.False(t, mr.Exists(cache.KeyStoreByManager(info.ManagerID)))
}

func TestStoreNotFound(t *testing.T) {
	dir, _, _ := newDirectory(t)
	_, err := dir.Store(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrStoreNotFound)
	_, err = dir.StoreByManager(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreWorksWithoutRedis(t *testing.T) {
	fake := dbtest.New()
	row := addStore(fake)
	dir := &Directory{Q: fake}

	info, err := dir.Store(context.Background(), uuid.UUID(row.ID.Bytes))
	require.NoError(t, err)
	require.Equal(t, "Bun Cha Huong Lien", info.Name)
}

func TestStoreWithoutCoordinates(t *testing.T) {
	dir, fake, _ := newDirectory(t)
	row := fake.AddStore(dbgen.Store{ManagerID: common.PGUUID(uuid.New()), Name: "Pop-up"})

	info, err := dir.Store(context.Background(), uuid.UUID(row.ID.Bytes))
	require.NoError(t, err)
	require.Nil(t, info.Location)
}

func TestPriceReadsAreFresh(t *testing.T) {
	dir, fake, _ := newDirectory(t)
	store := addStore(fake)
	food := fake.AddFood(dbgen.Food{StoreID: store.ID, Name: "Bun cha", Price: decimal.RequireFromString("55000"), IsAvailable: true})
	other := fake.AddFood(dbgen.Food{StoreID: store.ID, Name: "Nem", Price: decimal.RequireFromString("30000")})
	opt := fake.AddSizeOption(dbgen.SizeOption{FoodID: food.ID, Name: "Extra noodles", Price: decimal.RequireFromString("5000")})
	ctx := context.Background()

	got, err := dir.FoodForCheckout(ctx, uuid.UUID(food.ID.Bytes))
	require.NoError(t, err)
	require.True(t, got.Price.Equal(decimal.RequireFromString("55000")))
	require.Equal(t, uuid.UUID(store.ID.Bytes), got.StoreID)

	sz, err := dir.SizeOptionForCheckout(ctx, uuid.UUID(opt.ID.Bytes), uuid.UUID(food.ID.Bytes))
	require.NoError(t, err)
	require.True(t, sz.Price.Equal(decimal.RequireFromString("5000")))

	_, err = dir.SizeOptionForCheckout(ctx, uuid.UUID(opt.ID.Bytes), uuid.UUID(other.ID.Bytes))
	require.ErrorIs(t, err, ErrSizeOptionNotFound)

	_, err = dir.FoodForCheckout(ctx, uuid.New())
	require.ErrorIs(t, err, ErrFoodNotFound)
}

func TestCustomerProfile(t *testing.T) {
	dir, fake, _ := newDirectory(t)
	user := uuid.New()
	fake.AddCustomerProfile(dbgen.CustomerProfile{
		UserID:    common.PGUUID(user),
		FullName:  "Lan Nguyen",
		Phone:     "0901234567",
		Address:   "12 Le Loi",
		Latitude:  pgtype.Float8{Float64: 10.7769, Valid: true},
		Longitude: pgtype.Float8{Float64: 106.6951, Valid: true},
	})

	p, err := dir.CustomerProfile(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, "Lan Nguyen", p.FullName)
	require.NotNil(t, p.Location)

	_, err = dir.CustomerProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestStoreHandler(t *testing.T) {
	dir, fake, _ := newDirectory(t)
	row := addStore(fake)
	h := &Handler{Directory: dir}
	r := chi.NewRouter()
	r.Get("/stores/{id}", h.Store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/"+common.UUIDString(row.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Bun Cha Huong Lien")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/nope", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
