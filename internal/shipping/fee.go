package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/obs"
)

// Quote sources.
const (
	SourceFlat      = "flat"
	SourceRoute     = "route"
	SourceHaversine = "haversine"
)

// DistancePlaces is the precision distances are normalised to before pricing.
const DistancePlaces int32 = 2

// Quote is the shipping fee for one store leg.
type Quote struct {
	DistanceKm *decimal.Decimal
	Polyline   *string
	Fee        decimal.Decimal
	Source     string
}

// FeeCalculator prices a delivery leg as base + rate × distance. Provider
// failures fall back to the haversine distance and are never returned.
type FeeCalculator struct {
	BaseFee   decimal.Decimal
	PerKmRate decimal.Decimal
	Decimals  int32
	Provider  RouteProvider
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// Quote computes the fee between origin and dest. A missing point yields the
// flat base fee with no distance.
func (c FeeCalculator) Quote(ctx context.Context, origin, dest *Point) Quote {
	if origin == nil || dest == nil {
		obs.RoutingRequestsTotal.WithLabelValues("skipped").Inc()
		return Quote{Fee: c.BaseFee.Round(c.Decimals), Source: SourceFlat}
	}

	km := Haversine(*origin, *dest)
	source := SourceHaversine
	var polyline *string
	if c.Provider != nil {
		route, err := c.route(ctx, *origin, *dest)
		switch {
		case err != nil:
			c.Logger.Warn().Err(err).Float64("haversine_km", km).Msg("routing_fallback")
		case route.DistanceKm <= 0:
			c.Logger.Warn().Float64("haversine_km", km).Msg("routing_zero_distance")
		default:
			km = route.DistanceKm
			source = SourceRoute
			if route.Polyline != "" {
				line := route.Polyline
				polyline = &line
			}
		}
	}
	if source == SourceRoute {
		obs.RoutingRequestsTotal.WithLabelValues("route").Inc()
	} else {
		obs.RoutingRequestsTotal.WithLabelValues("fallback").Inc()
	}

	distance := decimal.NewFromFloat(km).Round(DistancePlaces)
	return Quote{
		DistanceKm: &distance,
		Polyline:   polyline,
		Fee:        c.Fee(distance),
		Source:     source,
	}
}

// Fee applies the tariff to a normalised distance.
func (c FeeCalculator) Fee(distanceKm decimal.Decimal) decimal.Decimal {
	return c.BaseFee.Add(c.PerKmRate.Mul(distanceKm)).Round(c.Decimals)
}

// route bounds the provider call even when the provider ignores ctx.
func (c FeeCalculator) route(ctx context.Context, origin, dest Point) (Route, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		route Route
		err   error
	}
	done := make(chan result, 1)
	go func() {
		route, err := c.Provider.DrivingRoute(rctx, origin, dest)
		done <- result{route: route, err: err}
	}()
	select {
	case res := <-done:
		return res.route, res.err
	case <-rctx.Done():
		if errors.Is(rctx.Err(), context.DeadlineExceeded) {
			return Route{}, context.DeadlineExceeded
		}
		return Route{}, rctx.Err()
	}
}
