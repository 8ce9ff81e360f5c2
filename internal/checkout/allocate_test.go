package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/promotion"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func applied(amount string, targets ...uuid.UUID) Applied {
	return Applied{
		Rule:    promotion.Rule{ID: uuid.New()},
		Server:  dec(amount),
		Amount:  dec(amount),
		Targets: targets,
	}
}

func TestAllocateSplitsGlobalBySubtotal(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	subtotals := map[uuid.UUID]decimal.Decimal{a: dec("70000"), b: dec("30000")}
	promo := applied("100", a, b)

	shares := Allocate(subtotals, []Applied{promo})

	require.Len(t, shares[a], 1)
	require.Len(t, shares[b], 1)
	require.True(t, shares[a][0].Amount.Equal(dec("70")))
	require.True(t, shares[b][0].Amount.Equal(dec("30")))
	require.Equal(t, promo.Rule.ID, shares[a][0].PromotionID)
}

func TestAllocateLastStoreAbsorbsResidual(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	subtotals := map[uuid.UUID]decimal.Decimal{a: dec("10000"), b: dec("10000"), c: dec("10000")}

	shares := Allocate(subtotals, []Applied{applied("10000", a, b, c)})

	sum := decimal.Zero
	for _, id := range []uuid.UUID{a, b, c} {
		require.Len(t, shares[id], 1)
		sum = sum.Add(shares[id][0].Amount)
	}
	require.True(t, sum.Equal(dec("10000")))
	require.True(t, shares[a][0].Amount.Equal(dec("3333")))
	require.True(t, shares[c][0].Amount.Equal(dec("3334")))
}

func TestAllocateSingleTargetTakesEverything(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	subtotals := map[uuid.UUID]decimal.Decimal{a: dec("50000"), b: dec("50000")}

	shares := Allocate(subtotals, []Applied{applied("12345.5", b)})

	require.Empty(t, shares[a])
	require.True(t, shares[b][0].Amount.Equal(dec("12345.5")))
}

func TestSettleLeavesUnclampedSharesAlone(t *testing.T) {
	shares := []Share{{PromotionID: uuid.New(), Amount: dec("5000")}}

	kept, sum := Settle(dec("40000"), dec("15000"), shares)

	require.Equal(t, shares, kept)
	require.False(t, sum.Clamped)
	require.True(t, sum.Total.Equal(dec("50000")))
}

func TestSettleTrimsFromTheLastShare(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	shares := []Share{
		{PromotionID: first, Amount: dec("30000")},
		{PromotionID: second, Amount: dec("25000")},
	}

	kept, sum := Settle(dec("40000"), dec("15000"), shares)

	require.True(t, sum.Clamped)
	require.True(t, sum.Total.Equal(dec("15000")))
	require.True(t, sum.Discount.Equal(dec("40000")))
	require.Len(t, kept, 2)
	require.True(t, kept[0].Amount.Equal(dec("30000")))
	require.True(t, kept[1].Amount.Equal(dec("10000")))
}

func TestSettleDropsSharesTrimmedToZero(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	shares := []Share{
		{PromotionID: first, Amount: dec("50000")},
		{PromotionID: second, Amount: dec("5000")},
	}

	kept, sum := Settle(dec("40000"), dec("15000"), shares)

	require.Len(t, kept, 1)
	require.Equal(t, first, kept[0].PromotionID)
	require.True(t, kept[0].Amount.Equal(dec("40000")))
	require.True(t, sum.Total.Equal(dec("15000")))
}
