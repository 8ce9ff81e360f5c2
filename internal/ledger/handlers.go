package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/promotion"
)

// Handler exposes admin endpoints for order promotion attributions.
type Handler struct {
	Ledger *Ledger
}

// TotalsView is the settlement part of an order.
type TotalsView struct {
	OrderID            string          `json:"order_id"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ShippingFee        decimal.Decimal `json:"shipping_fee"`
	TotalDiscount      decimal.Decimal `json:"total_discount"`
	TotalAfterDiscount decimal.Decimal `json:"total_after_discount"`
}

// AttributionView is one promotion applied to an order.
type AttributionView struct {
	PromotionID   string          `json:"promotion_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToTotalsView renders the totals of an order.
func ToTotalsView(o dbgen.Order) TotalsView {
	return TotalsView{
		OrderID:            common.UUIDString(o.ID),
		Subtotal:           o.Subtotal,
		ShippingFee:        o.ShippingFee,
		TotalDiscount:      o.TotalDiscount,
		TotalAfterDiscount: o.TotalAfterDiscount,
	}
}

// ToAttributionView renders an attribution row.
func ToAttributionView(op dbgen.OrderPromotion) AttributionView {
	return AttributionView{
		PromotionID:   common.UUIDString(op.PromotionID),
		AppliedAmount: op.AppliedAmount,
		Note:          op.Note,
		CreatedAt:     op.CreatedAt.Time.UTC(),
		UpdatedAt:     op.UpdatedAt.Time.UTC(),
	}
}

type attachRequest struct {
	PromotionID   string           `json:"promotion_id" validate:"required,uuid"`
	AppliedAmount *decimal.Decimal `json:"applied_amount"`
	Note          string           `json:"note" validate:"max=500"`
}

type updateRequest struct {
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	Note          string          `json:"note" validate:"max=500"`
}

// List handles GET /admin/orders/{id}/promotions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	rows, err := h.Ledger.Attributions(r.Context(), orderID)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	out := make([]AttributionView, 0, len(rows))
	for _, op := range rows {
		out = append(out, ToAttributionView(op))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Attach handles POST /admin/orders/{id}/promotions.
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	var req attachRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.Ledger.Attach(r.Context(), orderID, uuid.MustParse(req.PromotionID), req.AppliedAmount, req.Note)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
		"order":       ToTotalsView(res.Order),
		"attribution": ToAttributionView(res.Attribution),
	}})
}

// Update handles PUT /admin/orders/{id}/promotions/{promoId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	promoID, ok := pathUUID(w, r, "promoId", "invalid promotion id")
	if !ok {
		return
	}
	var req updateRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.Ledger.Update(r.Context(), orderID, promoID, req.AppliedAmount, req.Note)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"order":       ToTotalsView(res.Order),
		"attribution": ToAttributionView(res.Attribution),
	}})
}

// Detach handles DELETE /admin/orders/{id}/promotions/{promoId}.
func (h *Handler) Detach(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	promoID, ok := pathUUID(w, r, "promoId", "invalid promotion id")
	if !ok {
		return
	}
	order, err := h.Ledger.Detach(r.Context(), orderID, promoID)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"order": ToTotalsView(order)}})
}

// Recompute handles POST /admin/orders/{id}/recompute.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	order, err := h.Ledger.RecomputeOrder(r.Context(), orderID)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"order": ToTotalsView(order)}})
}

func pathUUID(w http.ResponseWriter, r *http.Request, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", message, nil)
		return uuid.Nil, false
	}
	return id, true
}

func toAppError(err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return common.NotFound("order not found", err)
	case errors.Is(err, ErrPromotionNotFound):
		return common.NotFound("promotion not found", err)
	case errors.Is(err, ErrAttributionNotFound):
		return common.NotFound(err.Error(), err)
	case errors.Is(err, ErrDuplicateAttribution):
		return common.NewAppError("DUPLICATE_ATTRIBUTION", err.Error(), http.StatusConflict, err)
	case errors.Is(err, promotion.ErrScopeMismatch):
		return common.NewAppError("SCOPE_MISMATCH", "store promotion does not apply to this order's store", http.StatusBadRequest, err)
	case errors.Is(err, ErrNegativeAmount):
		return common.BadRequest(err.Error(), err)
	default:
		return err
	}
}
