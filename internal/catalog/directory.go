package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/cache"
	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/db"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/shipping"
)

var (
	// ErrStoreNotFound is returned for unknown stores or managers.
	ErrStoreNotFound = errors.New("store not found")
	// ErrFoodNotFound is returned when a food no longer exists.
	ErrFoodNotFound = errors.New("food not found")
	// ErrSizeOptionNotFound is returned for unknown or foreign size options.
	ErrSizeOptionNotFound = errors.New("size option not found")
	// ErrProfileNotFound is returned when the customer has no saved profile.
	ErrProfileNotFound = errors.New("customer profile not found")
)

// Querier is the subset of generated queries the directory reads.
type Querier interface {
	GetStoreByID(ctx context.Context, id pgtype.UUID) (dbgen.Store, error)
	GetStoreByManager(ctx context.Context, managerID pgtype.UUID) (dbgen.Store, error)
	GetCustomerProfile(ctx context.Context, userID pgtype.UUID) (dbgen.CustomerProfile, error)
	GetFood(ctx context.Context, id pgtype.UUID) (dbgen.Food, error)
	GetSizeOption(ctx context.Context, id pgtype.UUID) (dbgen.SizeOption, error)
}

// StoreInfo is the cached directory entry for a store.
type StoreInfo struct {
	ID        uuid.UUID       `json:"id"`
	ManagerID uuid.UUID       `json:"manager_id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Location  *shipping.Point `json:"location"`
	IsOpen    bool            `json:"is_open"`
}

// Profile is a customer's default delivery details.
type Profile struct {
	FullName string
	Phone    string
	Address  string
	Location *shipping.Point
}

// Food is a point-in-time price read for checkout.
type Food struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
}

// SizeOption is a point-in-time price read for checkout.
type SizeOption struct {
	ID     uuid.UUID
	FoodID uuid.UUID
	Name   string
	Price  decimal.Decimal
}

// Directory resolves stores, customer profiles and current prices. Store
// entries are cached; prices are always read from the database.
type Directory struct {
	Q      Querier
	Cache  *Cache
	Logger zerolog.Logger
}

// Store returns the directory entry for id.
func (d *Directory) Store(ctx context.Context, id uuid.UUID) (StoreInfo, error) {
	key := cache.KeyStore(id)
	var info StoreInfo
	if hit, err := d.Cache.GetJSON(ctx, key, &info); err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("store_cache_read_failed")
	} else if hit {
		return info, nil
	}
	row, err := d.Q.GetStoreByID(ctx, common.PGUUID(id))
	if err != nil {
		if db.IsNotFound(err) {
			return StoreInfo{}, ErrStoreNotFound
		}
		return StoreInfo{}, fmt.Errorf("get store: %w", err)
	}
	info = storeInfo(row)
	d.remember(ctx, key, info)
	return info, nil
}

// StoreByManager returns the store managed by managerID.
func (d *Directory) StoreByManager(ctx context.Context, managerID uuid.UUID) (StoreInfo, error) {
	key := cache.KeyStoreByManager(managerID)
	var info StoreInfo
	if hit, err := d.Cache.GetJSON(ctx, key, &info); err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("store_cache_read_failed")
	} else if hit {
		return info, nil
	}
	row, err := d.Q.GetStoreByManager(ctx, common.PGUUID(managerID))
	if err != nil {
		if db.IsNotFound(err) {
			return StoreInfo{}, ErrStoreNotFound
		}
		return StoreInfo{}, fmt.Errorf("get store by manager: %w", err)
	}
	info = storeInfo(row)
	d.remember(ctx, key, info)
	d.remember(ctx, cache.KeyStore(info.ID), info)
	return info, nil
}

// Invalidate drops the cached entries of a store.
func (d *Directory) Invalidate(ctx context.Context, info StoreInfo) error {
	return d.Cache.Delete(ctx, cache.KeyStore(info.ID), cache.KeyStoreByManager(info.ManagerID))
}

// CustomerProfile returns the customer's saved delivery defaults.
func (d *Directory) CustomerProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row, err := d.Q.GetCustomerProfile(ctx, common.PGUUID(userID))
	if err != nil {
		if db.IsNotFound(err) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("get customer profile: %w", err)
	}
	return Profile{
		FullName: row.FullName,
		Phone:    row.Phone,
		Address:  row.Address,
		Location: point(row.Latitude, row.Longitude),
	}, nil
}

// FoodForCheckout reads the current price of a food.
func (d *Directory) FoodForCheckout(ctx context.Context, id uuid.UUID) (Food, error) {
	row, err := d.Q.GetFood(ctx, common.PGUUID(id))
	if err != nil {
		if db.IsNotFound(err) {
			return Food{}, fmt.Errorf("%w: %s", ErrFoodNotFound, id)
		}
		return Food{}, fmt.Errorf("get food: %w", err)
	}
	return Food{
		ID:          uuid.UUID(row.ID.Bytes),
		StoreID:     uuid.UUID(row.StoreID.Bytes),
		Name:        row.Name,
		Price:       row.Price,
		IsAvailable: row.IsAvailable,
	}, nil
}

// SizeOptionForCheckout reads the current surcharge of a size option and
// checks it belongs to foodID.
func (d *Directory) SizeOptionForCheckout(ctx context.Context, id, foodID uuid.UUID) (SizeOption, error) {
	row, err := d.Q.GetSizeOption(ctx, common.PGUUID(id))
	if err != nil {
		if db.IsNotFound(err) {
			return SizeOption{}, fmt.Errorf("%w: %s", ErrSizeOptionNotFound, id)
		}
		return SizeOption{}, fmt.Errorf("get size option: %w", err)
	}
	if uuid.UUID(row.FoodID.Bytes) != foodID {
		return SizeOption{}, fmt.Errorf("%w: %s does not belong to food %s", ErrSizeOptionNotFound, id, foodID)
	}
	return SizeOption{
		ID:     uuid.UUID(row.ID.Bytes),
		FoodID: foodID,
		Name:   row.Name,
		Price:  row.Price,
	}, nil
}

func (d *Directory) remember(ctx context.Context, key string, info StoreInfo) {
	if err := d.Cache.SetJSON(ctx, key, info); err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("store_cache_write_failed")
	}
}

func storeInfo(row dbgen.Store) StoreInfo {
	return StoreInfo{
		ID:        uuid.UUID(row.ID.Bytes),
		ManagerID: uuid.UUID(row.ManagerID.Bytes),
		Name:      row.Name,
		Address:   row.Address,
		Location:  point(row.Latitude, row.Longitude),
		IsOpen:    row.IsOpen,
	}
}

func point(lat, lon pgtype.Float8) *shipping.Point {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	p := shipping.Point{Lat: lat.Float64, Lon: lon.Float64}
	if !p.Valid() {
		return nil
	}
	return &p
}
