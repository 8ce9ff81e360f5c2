package shipping

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/backend-food/internal/resilience"
)

// ErrNoRoute is returned when the provider cannot find a driving route.
var ErrNoRoute = errors.New("no route found")

// Route is a driving route between two points.
type Route struct {
	DistanceKm float64
	Polyline   string
}

// RouteProvider resolves driving routes. Implementations must honour ctx.
type RouteProvider interface {
	DrivingRoute(ctx context.Context, origin, dest Point) (Route, error)
}

// OSRMProvider queries an OSRM compatible /route/v1/driving endpoint.
type OSRMProvider struct {
	BaseURL string
	HTTP    *resilience.HTTPClient
}

// OSRMOptions configures NewOSRMProvider.
type OSRMOptions struct {
	BaseURL      string
	Timeout      time.Duration
	MaxAttempts  int
	BreakerMin   int
	BreakerRatio float64
	BreakerOpen  time.Duration
	Logger       zerolog.Logger
}

// NewOSRMProvider builds a provider whose client is traced with otelhttp and
// guarded by a circuit breaker.
func NewOSRMProvider(opts OSRMOptions) *OSRMProvider {
	breaker := resilience.NewBreaker(opts.BreakerMin, opts.BreakerRatio, opts.BreakerOpen).
		WithTarget("routing").
		WithLogger(opts.Logger)
	return &OSRMProvider{
		BaseURL: strings.TrimRight(opts.BaseURL, "/"),
		HTTP: &resilience.HTTPClient{
			Client:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
			Breaker:     breaker,
			MaxAttempts: opts.MaxAttempts,
			BaseBackoff: 50 * time.Millisecond,
			Jitter:      0.2,
			Timeout:     opts.Timeout,
			Target:      "routing",
			Logger:      &opts.Logger,
		},
	}
}

// Breaker exposes the provider breaker for readiness reporting.
func (p *OSRMProvider) Breaker() *resilience.Breaker {
	if p == nil || p.HTTP == nil {
		return nil
	}
	return p.HTTP.Breaker
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// DrivingRoute implements RouteProvider.
func (p *OSRMProvider) DrivingRoute(ctx context.Context, origin, dest Point) (Route, error) {
	if p == nil || p.HTTP == nil || p.BaseURL == "" {
		return Route{}, errors.New("routing provider not configured")
	}
	url := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full&geometries=polyline",
		p.BaseURL, coord(origin.Lon), coord(origin.Lat), coord(dest.Lon), coord(dest.Lat))
	var body osrmResponse
	if err := p.HTTP.GetJSON(ctx, url, &body); err != nil {
		var statusErr *resilience.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
			return Route{}, ErrNoRoute
		}
		return Route{}, err
	}
	if !strings.EqualFold(body.Code, "Ok") || len(body.Routes) == 0 {
		return Route{}, ErrNoRoute
	}
	best := body.Routes[0]
	return Route{DistanceKm: best.Distance / 1000, Polyline: best.Geometry}, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
