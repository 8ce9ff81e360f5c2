package checkout

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/order"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	Svc *Service
}

// Create handles POST /checkout.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid subject", nil)
		return
	}
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(in); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.Svc.Checkout(r.Context(), userID, in)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	orders := make([]map[string]any, 0, len(res.Orders))
	for _, placed := range res.Orders {
		orders = append(orders, map[string]any{
			"order":      order.ToDetailView(placed.Order, placed.Items, placed.Attributions),
			"fee_source": placed.FeeSource,
		})
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
		"group_id": res.GroupID.String(),
		"orders":   orders,
	}})
}

func toAppError(err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return common.NewAppError("EMPTY_CART", "cart is empty", http.StatusBadRequest, err)
	case errors.Is(err, ErrReferenceNotFound):
		return common.NewAppError("REFERENCE_NOT_FOUND", err.Error(), http.StatusNotFound, err)
	case errors.Is(err, ErrDiscountInvalid):
		return common.NewAppError("DISCOUNT_INVALID", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, ErrTotalCeiling):
		return common.NewAppError("TOTAL_CEILING", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, ErrFoodUnavailable), errors.Is(err, ErrStoreClosed):
		return common.Conflict(err.Error(), err)
	case errors.Is(err, ErrCartChanged):
		return common.NewAppError("CART_CHANGED", "cart changed during checkout, please retry", http.StatusConflict, err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrReceiverRequired):
		return common.BadRequest(err.Error(), err)
	case errors.Is(err, ErrInProgress):
		return common.NewAppError("CHECKOUT_IN_PROGRESS", err.Error(), http.StatusConflict, err)
	default:
		return err
	}
}
