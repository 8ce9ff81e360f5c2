package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

func router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/orders", h.List)
	r.Get("/orders/groups/{groupId}", h.Group)
	r.Get("/orders/{id}", h.Get)
	r.Post("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/cancel-group", h.CancelGroup)
	return r
}

func as(req *http.Request, id common.Identity) *http.Request {
	return req.WithContext(common.WithIdentity(req.Context(), id))
}

func TestCancelGroupHandlerReportsBlockingOrders(t *testing.T) {
	f := newFixture(t)
	orders := f.group(dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusPreparing)
	h := router(&Handler{Svc: f.svc})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+common.UUIDString(orders[0].ID)+"/cancel-group", strings.NewReader(`{"confirmed":true}`))
	h.ServeHTTP(rec, as(req, f.customerID()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				BlockingOrderIDs []string `json:"blocking_order_ids"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "GROUP_NOT_CANCELLABLE", resp.Error.Code)
	require.Equal(t, []string{common.UUIDString(orders[1].ID)}, resp.Error.Details.BlockingOrderIDs)
}

func TestCancelGroupHandlerPromptsFirst(t *testing.T) {
	f := newFixture(t)
	orders := f.group(dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusAwaitingConfirmation)
	h := router(&Handler{Svc: f.svc})
	target := "/orders/" + common.UUIDString(orders[0].ID) + "/cancel-group"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`)), f.customerID()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"requires_confirmation":true`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"confirmed":true}`)), f.customerID()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"cancelled":true`)
}

func TestStatusHandler(t *testing.T) {
	f := newFixture(t)
	o := f.addOrder(dbgen.OrderStatusAwaitingConfirmation, pgtype.UUID{}, 0)
	h := router(&Handler{Svc: f.svc})
	target := "/orders/" + common.UUIDString(o.ID) + "/status"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"new_status":"preparing"}`)), f.managerID()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_STATE")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"new_status":"flying"}`)), f.managerID()))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"new_status":"confirmed"}`)), f.managerID()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"order_status":"confirmed"`)
}

func TestReadHandlers(t *testing.T) {
	f := newFixture(t)
	orders := f.group(dbgen.OrderStatusAwaitingConfirmation, dbgen.OrderStatusAwaitingConfirmation)
	h := router(&Handler{Svc: f.svc})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/orders?page=1&limit=1", nil), f.customerID()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-Total-Count"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/orders/groups/"+common.UUIDString(orders[0].GroupID), nil), f.customerID()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), common.UUIDString(orders[1].ID))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil), f.customerID()))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
