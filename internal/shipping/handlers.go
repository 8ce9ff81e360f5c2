package shipping

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// Handler exposes the shipper endpoints.
type Handler struct {
	Svc *DeliveryService
}

// DeliveryView is what a shipper sees of an order.
type DeliveryView struct {
	OrderID            string           `json:"order_id"`
	GroupID            string           `json:"group_id"`
	StoreID            string           `json:"store_id"`
	OrderStatus        string           `json:"order_status"`
	DeliveryStatus     string           `json:"delivery_status"`
	ShipperID          *string          `json:"shipper_id"`
	ReceiverName       string           `json:"receiver_name"`
	ReceiverPhone      string           `json:"receiver_phone"`
	ShipAddress        string           `json:"ship_address"`
	ShipLatitude       *float64         `json:"ship_latitude"`
	ShipLongitude      *float64         `json:"ship_longitude"`
	RouteDistanceKm    *decimal.Decimal `json:"route_distance_km"`
	ShippingFee        decimal.Decimal  `json:"shipping_fee"`
	TotalAfterDiscount decimal.Decimal  `json:"total_after_discount"`
	PaymentMethod      string           `json:"payment_method"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ToDeliveryView renders an order for shipper consumption.
func ToDeliveryView(o dbgen.Order) DeliveryView {
	v := DeliveryView{
		OrderID:            common.UUIDString(o.ID),
		GroupID:            common.UUIDString(o.GroupID),
		StoreID:            common.UUIDString(o.StoreID),
		OrderStatus:        string(o.OrderStatus),
		DeliveryStatus:     string(o.DeliveryStatus),
		ShipperID:          common.NullableUUID(o.ShipperID),
		ReceiverName:       o.ReceiverName,
		ReceiverPhone:      o.ReceiverPhone,
		ShipAddress:        o.ShipAddress,
		ShippingFee:        o.ShippingFee,
		TotalAfterDiscount: o.TotalAfterDiscount,
		PaymentMethod:      string(o.PaymentMethod),
		UpdatedAt:          o.UpdatedAt.Time.UTC(),
	}
	if o.ShipLatitude.Valid && o.ShipLongitude.Valid {
		lat, lon := o.ShipLatitude.Float64, o.ShipLongitude.Float64
		v.ShipLatitude, v.ShipLongitude = &lat, &lon
	}
	if o.RouteDistanceKm.Valid {
		d := o.RouteDistanceKm.Decimal
		v.RouteDistanceKm = &d
	}
	return v
}

type advanceRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted picked_up delivering delivered"`
}

// Advance handles POST /shipper/orders/{id}/delivery.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	shipperID, err := common.ParseUUID(actor.UserID)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid subject", nil)
		return
	}
	orderID, err := common.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	var req advanceRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(req); err != nil {
		common.WriteError(w, err)
		return
	}
	order, err := h.Svc.Advance(r.Context(), shipperID, orderID, dbgen.DeliveryStatus(req.Status))
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ToDeliveryView(order)})
}

// Available handles GET /shipper/orders/available.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	orders, err := h.Svc.Available(r.Context(), int32(limit))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	out := make([]DeliveryView, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToDeliveryView(o))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func toAppError(err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return common.NotFound("order not found", err)
	case errors.Is(err, ErrAlreadyAssigned):
		return common.Conflict(err.Error(), err)
	case errors.Is(err, ErrNotAssigned):
		return common.Forbidden(err.Error(), err)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrOrderCancelled), errors.Is(err, ErrOrderNotReady):
		return common.InvalidState(err.Error(), err)
	default:
		return err
	}
}
