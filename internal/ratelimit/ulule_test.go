package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/backend-food/internal/common"
)

func TestFixedWindowAllow(t *testing.T) {
	fw := FixedWindow{Store: memory.NewStore()}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := fw.Allow(ctx, "checkout:user:1", time.Minute, 3)
		require.NoError(t, err)
		require.True(t, allowed)
		require.Equal(t, 2-i, remaining)
	}
	allowed, remaining, reset, err := fw.Allow(ctx, "checkout:user:1", time.Minute, 3)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)
	require.True(t, reset.After(time.Now()))

	allowed, _, _, err = fw.Allow(ctx, "checkout:user:2", time.Minute, 3)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestKeyByCaller(t *testing.T) {
	key := KeyByCaller("checkout:")
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	require.Equal(t, "checkout:ip:198.51.100.7", key(req))

	req = req.WithContext(common.WithIdentity(req.Context(), common.Identity{UserID: "u-9", Role: common.RoleCustomer}))
	require.Equal(t, "checkout:user:u-9", key(req))
}

func TestMiddlewareWithFixedWindow(t *testing.T) {
	h := Handler{
		Limiter: FixedWindow{Store: memory.NewStore()},
		Config:  Config{Key: func(*http.Request) string { return "k" }, Window: time.Minute, Max: 1},
	}
	next := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }))

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	next.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "RATE_LIMITED")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
