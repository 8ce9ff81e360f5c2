package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/config"
	"github.com/noah-isme/backend-food/internal/db"
	"github.com/noah-isme/backend-food/internal/obs"
)

// Fixed ids keep the seed repeatable; every insert is ON CONFLICT DO NOTHING.
const (
	customerID = "00000000-0000-4000-8000-000000000001"
	managerA   = "00000000-0000-4000-8000-0000000000a1"
	managerB   = "00000000-0000-4000-8000-0000000000b1"
	storeA     = "10000000-0000-4000-8000-00000000000a"
	storeB     = "10000000-0000-4000-8000-00000000000b"
	phoA       = "20000000-0000-4000-8000-0000000000a1"
	riceA      = "20000000-0000-4000-8000-0000000000a2"
	teaB       = "20000000-0000-4000-8000-0000000000b1"
	largePho   = "30000000-0000-4000-8000-0000000000a1"
	largeTea   = "30000000-0000-4000-8000-0000000000b1"
	promoAll   = "40000000-0000-4000-8000-000000000001"
	promoA     = "40000000-0000-4000-8000-00000000000a"
)

type statement struct {
	label string
	sql   string
	args  []any
}

func main() {
	logger := obs.NewLogger(os.Getenv("OBS_LOG_FORMAT"), "info").With().Str("component", "seeder").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolOptions{ApplicationName: "food-seeder"})
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	now := time.Now().UTC()
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, st := range seed(now) {
			tag, err := tx.Exec(ctx, st.sql, st.args...)
			if err != nil {
				return err
			}
			logger.Info().Str("row", st.label).Int64("inserted", tag.RowsAffected()).Send()
		}
		return nil
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	logSummary(logger)
}

func seed(now time.Time) []statement {
	const storeSQL = `INSERT INTO stores (id, manager_id, name, address, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`
	const foodSQL = `INSERT INTO foods (id, store_id, name, price) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`
	const optionSQL = `INSERT INTO size_options (id, food_id, name, price) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`
	const cartSQL = `INSERT INTO cart_items (user_id, food_id, size_option_id, quantity)
SELECT $1::uuid, $2::uuid, $3::uuid, $4::int WHERE NOT EXISTS (SELECT 1 FROM cart_items WHERE user_id = $1::uuid AND food_id = $2::uuid)`
	const promoSQL = `INSERT INTO promotions (id, name, scope, store_id, discount_type, discount_value, max_discount_amount, minimum_pay, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING`

	start := now.AddDate(0, 0, -1)
	end := now.AddDate(0, 1, 0)
	return []statement{
		{"store:pho", storeSQL, []any{storeA, managerA, "Pho Corner", "12 Ly Thuong Kiet, Hanoi", 21.0245, 105.8412}},
		{"store:tea", storeSQL, []any{storeB, managerB, "Lotus Tea House", "88 Hang Bai, Hanoi", 21.0190, 105.8520}},
		{"food:pho", foodSQL, []any{phoA, storeA, "Beef pho", money("45000")}},
		{"food:rice", foodSQL, []any{riceA, storeA, "Broken rice", money("35000")}},
		{"food:tea", foodSQL, []any{teaB, storeB, "Lotus tea", money("25000")}},
		{"option:pho-large", optionSQL, []any{largePho, phoA, "Large", money("10000")}},
		{"option:tea-large", optionSQL, []any{largeTea, teaB, "Large", money("5000")}},
		{"profile:customer", `INSERT INTO customer_profiles (user_id, full_name, phone, address, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (user_id) DO NOTHING`,
			[]any{customerID, "Demo Customer", "0900000000", "1 Trang Tien, Hanoi", 21.0250, 105.8550}},
		{"cart:pho", cartSQL, []any{customerID, phoA, largePho, 1}},
		{"cart:tea", cartSQL, []any{customerID, teaB, nil, 2}},
		{"promo:global", promoSQL, []any{promoAll, "Lunch 10%", "GLOBAL", nil, "PERCENT", money("10"), money("20000"), money("50000"), start, end}},
		{"promo:pho", promoSQL, []any{promoA, "Pho Corner 5k off", "STORE", storeA, "AMOUNT", money("5000"), nil, money("0"), start, end}},
	}
}

func logSummary(logger zerolog.Logger) {
	logger.Info().
		Str("customer_id", customerID).
		Strs("store_ids", []string{storeA, storeB}).
		Strs("promotion_ids", []string{promoAll, promoA}).
		Msg("seed complete; sign a token with sub=customer_id to check out the demo cart")
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
