package promotion

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// Handler exposes promotion management and discovery endpoints.
type Handler struct {
	Svc *Service
}

// View is the JSON representation of a promotion.
type View struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Scope             string           `json:"scope"`
	StoreID           *string          `json:"store_id"`
	DiscountType      string           `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	MinimumPay        decimal.Decimal  `json:"minimum_pay"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	IsActive          bool             `json:"is_active"`
}

// ToView renders the generated model.
func ToView(p dbgen.Promotion) View {
	v := View{
		ID:            common.UUIDString(p.ID),
		Name:          p.Name,
		Scope:         string(p.Scope),
		StoreID:       common.NullableUUID(p.StoreID),
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MinimumPay:    p.MinimumPay,
		StartDate:     p.StartDate.Time.UTC(),
		EndDate:       p.EndDate.Time.UTC(),
		IsActive:      p.IsActive,
	}
	if p.MaxDiscountAmount.Valid {
		capped := p.MaxDiscountAmount.Decimal
		v.MaxDiscountAmount = &capped
	}
	return v
}

func toViews(items []dbgen.Promotion) []View {
	out := make([]View, 0, len(items))
	for _, p := range items {
		out = append(out, ToView(p))
	}
	return out
}

// Create handles POST /promotions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	promo, err := h.Svc.Create(r.Context(), actor, in)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": ToView(promo)})
}

// List handles GET /promotions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	items, total, err := h.Svc.List(r.Context(), actor, ListFilter{
		StoreID: r.URL.Query().Get("store_id"),
		Scope:   r.URL.Query().Get("scope"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       toViews(items),
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}

// Get handles GET /promotions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	promo, err := h.Svc.Get(r.Context(), actor, id)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ToView(promo)})
}

// Update handles PUT /promotions/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	promo, err := h.Svc.Update(r.Context(), actor, id, in)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ToView(promo)})
}

// Delete handles DELETE /promotions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Available handles GET /promotions/available?store_id=.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	var storeID pgtype.UUID
	if raw := r.URL.Query().Get("store_id"); raw != "" {
		parsed, err := common.ParseUUID(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid store_id", nil)
			return
		}
		storeID = parsed
	}
	items, err := h.Svc.Available(r.Context(), storeID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toViews(items)})
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (common.Identity, pgtype.UUID, bool) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return common.Identity{}, pgtype.UUID{}, false
	}
	id, err := common.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid promotion id", nil)
		return common.Identity{}, pgtype.UUID{}, false
	}
	return actor, id, true
}

func toAppError(err error) error {
	if common.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return common.NotFound("promotion not found", err)
	case errors.Is(err, ErrForbidden):
		return common.Forbidden("promotion management not allowed", err)
	case errors.Is(err, ErrInUse):
		return common.Conflict(err.Error(), err)
	case errors.Is(err, ErrCapOnAmount):
		return common.NewAppError("CAP_ON_AMOUNT", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, ErrInvalidValue), errors.Is(err, ErrInvalidWindow),
		errors.Is(err, ErrStoreRequired), errors.Is(err, ErrScopeMismatch),
		errors.Is(err, ErrInvalidScope):
		return common.BadRequest(err.Error(), err)
	default:
		return err
	}
}
