package shipping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newOSRM(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *OSRMProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOSRMProvider(OSRMOptions{
		BaseURL:      srv.URL + "/",
		Timeout:      timeout,
		MaxAttempts:  1,
		BreakerMin:   5,
		BreakerRatio: 0.5,
		BreakerOpen:  time.Second,
		Logger:       zerolog.Nop(),
	})
}

func TestOSRMProviderParsesRoute(t *testing.T) {
	var gotPath, gotQuery string
	p := newOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":5234.5,"geometry":"abc"}]}`))
	}, time.Second)

	route, err := p.DrivingRoute(context.Background(), storePoint, dropoffPoint)
	require.NoError(t, err)
	require.InDelta(t, 5.2345, route.DistanceKm, 1e-9)
	require.Equal(t, "abc", route.Polyline)
	require.Equal(t, "/route/v1/driving/106.6602,10.7626;106.6951,10.7769", gotPath)
	require.Equal(t, "overview=full&geometries=polyline", gotQuery)
}

func TestOSRMProviderNoRoute(t *testing.T) {
	p := newOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}, time.Second)

	_, err := p.DrivingRoute(context.Background(), storePoint, dropoffPoint)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestOSRMProviderBadRequestIsNoRoute(t *testing.T) {
	p := newOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"InvalidQuery"}`, http.StatusBadRequest)
	}, time.Second)

	_, err := p.DrivingRoute(context.Background(), storePoint, dropoffPoint)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestSlowOSRMFallsBackToHaversine(t *testing.T) {
	release := make(chan struct{})
	p := newOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 30*time.Millisecond)
	defer close(release)

	calc := calculator(p)
	q := calc.Quote(context.Background(), &storePoint, &dropoffPoint)

	require.Equal(t, SourceHaversine, q.Source)
	require.Equal(t, "31520", q.Fee.String())
}
