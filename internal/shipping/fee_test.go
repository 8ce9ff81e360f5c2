package shipping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	route Route
	err   error
	delay time.Duration
	calls int
}

func (s *stubProvider) DrivingRoute(ctx context.Context, _, _ Point) (Route, error) {
	s.calls++
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.route, s.err
}

func calculator(p RouteProvider) FeeCalculator {
	return FeeCalculator{
		BaseFee:   decimal.NewFromInt(15000),
		PerKmRate: decimal.NewFromInt(4000),
		Decimals:  0,
		Provider:  p,
		Timeout:   20 * time.Millisecond,
		Logger:    zerolog.Nop(),
	}
}

var (
	storePoint   = Point{Lat: 10.7626, Lon: 106.6602}
	dropoffPoint = Point{Lat: 10.7769, Lon: 106.6951}
)

func TestHaversineKnownDistance(t *testing.T) {
	km := Haversine(storePoint, dropoffPoint)
	require.InDelta(t, 4.1307, km, 0.0005)
	require.Zero(t, Haversine(storePoint, storePoint))
}

func TestPointValid(t *testing.T) {
	require.True(t, storePoint.Valid())
	require.False(t, Point{Lat: 91, Lon: 0}.Valid())
	require.False(t, Point{Lat: 0, Lon: -181}.Valid())
}

func TestQuoteFallsBackToHaversineOnSlowProvider(t *testing.T) {
	provider := &stubProvider{route: Route{DistanceKm: 9}, delay: 200 * time.Millisecond}
	calc := calculator(provider)

	start := time.Now()
	q := calc.Quote(context.Background(), &storePoint, &dropoffPoint)

	require.Less(t, time.Since(start), 150*time.Millisecond)
	require.Equal(t, SourceHaversine, q.Source)
	require.NotNil(t, q.DistanceKm)
	require.Equal(t, "4.13", q.DistanceKm.String())
	require.True(t, q.Fee.Equal(decimal.NewFromInt(31520)), q.Fee.String())
	require.Nil(t, q.Polyline)
}

func TestQuoteFallsBackOnProviderError(t *testing.T) {
	calc := calculator(&stubProvider{err: errors.New("boom")})

	q := calc.Quote(context.Background(), &storePoint, &dropoffPoint)

	require.Equal(t, SourceHaversine, q.Source)
	require.True(t, q.Fee.Equal(decimal.NewFromInt(31520)))
}

func TestQuoteUsesRouteDistance(t *testing.T) {
	calc := calculator(&stubProvider{route: Route{DistanceKm: 5.2345, Polyline: "u{~vHavfpS"}})

	q := calc.Quote(context.Background(), &storePoint, &dropoffPoint)

	require.Equal(t, SourceRoute, q.Source)
	require.Equal(t, "5.23", q.DistanceKm.String())
	require.True(t, q.Fee.Equal(decimal.NewFromInt(35920)), q.Fee.String())
	require.NotNil(t, q.Polyline)
	require.Equal(t, "u{~vHavfpS", *q.Polyline)
}

func TestQuoteIgnoresZeroRouteDistance(t *testing.T) {
	calc := calculator(&stubProvider{route: Route{DistanceKm: 0}})

	q := calc.Quote(context.Background(), &storePoint, &dropoffPoint)

	require.Equal(t, SourceHaversine, q.Source)
}

func TestQuoteWithoutCoordinatesIsFlat(t *testing.T) {
	provider := &stubProvider{}
	calc := calculator(provider)

	q := calc.Quote(context.Background(), nil, &dropoffPoint)

	require.Equal(t, SourceFlat, q.Source)
	require.Nil(t, q.DistanceKm)
	require.True(t, q.Fee.Equal(decimal.NewFromInt(15000)))
	require.Zero(t, provider.calls)
}

func TestFeeRoundsHalfUp(t *testing.T) {
	calc := calculator(nil)
	calc.PerKmRate = decimal.RequireFromString("1250")

	// 15000 + 1250 × 1.1 = 16375, 0 decimals keeps it whole.
	require.Equal(t, "16375", calc.Fee(decimal.RequireFromString("1.1")).String())
	calc.PerKmRate = decimal.RequireFromString("0.5")
	require.Equal(t, "15001", calc.Fee(decimal.RequireFromString("1")).String())
}
