package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

func customerRequest(body string, user uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	return req.WithContext(common.WithIdentity(req.Context(), common.Identity{
		UserID: user.String(),
		Role:   common.RoleCustomer,
	}))
}

func TestCreateHandler(t *testing.T) {
	e := newEnv(t)
	e.addStore("A", "60000", 1)
	e.addStore("B", "40000", 1)
	promo := e.addPromo(dbgen.PromotionScopeGLOBAL, pgtype.UUID{}, dbgen.DiscountKindAMOUNT, "10000")
	h := &Handler{Svc: e.svc}

	body := `{"receiver_name":"Lan","phone":"0901234567","address":"12 Ly Tu Trong","payment_method":"online","promo_ids":["` + common.UUIDString(promo.ID) + `"]}`
	rec := httptest.NewRecorder()
	h.Create(rec, customerRequest(body, e.user))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			GroupID string `json:"group_id"`
			Orders  []struct {
				Order struct {
					ID                 string `json:"id"`
					GroupID            string `json:"group_id"`
					PaymentMethod      string `json:"payment_method"`
					TotalAfterDiscount string `json:"total_after_discount"`
					Promotions         []struct {
						AppliedAmount string `json:"applied_amount"`
					} `json:"promotions"`
				} `json:"order"`
				FeeSource string `json:"fee_source"`
			} `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Orders, 2)
	require.Equal(t, resp.Data.GroupID, resp.Data.Orders[0].Order.ID)
	require.Equal(t, resp.Data.GroupID, resp.Data.Orders[1].Order.GroupID)
	require.Equal(t, "online", resp.Data.Orders[0].Order.PaymentMethod)
	require.Equal(t, "69000", resp.Data.Orders[0].Order.TotalAfterDiscount)
	require.Equal(t, "51000", resp.Data.Orders[1].Order.TotalAfterDiscount)
	require.Equal(t, "6000", resp.Data.Orders[0].Order.Promotions[0].AppliedAmount)
	require.Equal(t, "flat", resp.Data.Orders[0].FeeSource)
}

func TestCreateHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		seed   bool
		body   string
		status int
		code   string
	}{
		{name: "empty cart", body: `{"receiver_name":"Lan","phone":"1","address":"x"}`, status: http.StatusBadRequest, code: "EMPTY_CART"},
		{name: "unknown field", seed: true, body: `{"receiver":"Lan"}`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "bad payment", seed: true, body: `{"payment_method":"barter"}`, status: http.StatusBadRequest, code: "validation failed"},
		{name: "negative discount", seed: true, body: `{"discount_amount":"-5"}`, status: http.StatusBadRequest, code: "validation failed"},
		{name: "inflated discount", seed: true, body: `{"receiver_name":"Lan","phone":"1","address":"x","discount_amount":"1000"}`, status: http.StatusBadRequest, code: "DISCOUNT_INVALID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			if tc.seed {
				e.addStore("A", "30000", 1)
			}
			h := &Handler{Svc: e.svc}
			rec := httptest.NewRecorder()
			h.Create(rec, customerRequest(tc.body, e.user))
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.Contains(t, rec.Body.String(), tc.code)
		})
	}
}

func TestCreateHandlerRequiresIdentity(t *testing.T) {
	e := newEnv(t)
	h := &Handler{Svc: e.svc}
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateHandlerCartChangedIsConflict(t *testing.T) {
	e := newEnv(t)
	e.addStore("A", "30000", 1)
	e.svc.Fees = &drainingQuoter{flatQuoter: flatQuoter{fee: dec("15000")}, fake: e.fake, user: e.user}
	h := &Handler{Svc: e.svc}
	rec := httptest.NewRecorder()
	h.Create(rec, customerRequest(`{"receiver_name":"Lan","phone":"1","address":"x"}`, e.user))
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "CART_CHANGED")
}
