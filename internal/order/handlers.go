package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// Handler exposes order reads and status changes.
type Handler struct {
	Svc *Service
}

// List handles GET /orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	orders, total, err := h.Svc.List(r.Context(), actor, page, perPage)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": toViews(orders),
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}

// Get handles GET /orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	d, err := h.Svc.Get(r.Context(), actor, orderID)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ToDetailView(d.Order, d.Items, d.Promotions)})
}

// Group handles GET /orders/groups/{groupId}.
func (h *Handler) Group(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	groupID, ok := pathID(w, r, "groupId", "invalid group id")
	if !ok {
		return
	}
	orders, err := h.Svc.Group(r.Context(), actor, groupID)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"group_id": common.UUIDString(groupID),
		"orders":   toViews(orders),
	}})
}

// UpdateStatus handles POST /orders/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	var in StatusInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(in); err != nil {
		common.WriteError(w, err)
		return
	}
	updated, err := h.Svc.UpdateStatus(r.Context(), actor, orderID, in)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ToView(updated)})
}

// CancelGroup handles POST /orders/{id}/cancel-group.
func (h *Handler) CancelGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(w, r, "id", "invalid order id")
	if !ok {
		return
	}
	var in GroupCancelInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(in); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.Svc.CancelGroup(r.Context(), actor, orderID, in)
	if err != nil {
		common.WriteError(w, toAppError(err))
		return
	}
	data := map[string]any{
		"group_id":  common.UUIDString(res.GroupID),
		"cancelled": res.Cancelled,
		"orders":    toViews(res.Orders),
	}
	if !res.Cancelled {
		data["requires_confirmation"] = true
		data["message"] = "all orders of this checkout will be cancelled"
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": data})
}

func toViews(orders []dbgen.Order) []View {
	out := make([]View, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToView(o))
	}
	return out
}

func identity(w http.ResponseWriter, r *http.Request) (common.Identity, bool) {
	actor, ok := common.IdentityFrom(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
	}
	return actor, ok
}

func pathID(w http.ResponseWriter, r *http.Request, param, message string) (pgtype.UUID, bool) {
	id, err := common.ParseUUID(chi.URLParam(r, param))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", message, nil)
		return pgtype.UUID{}, false
	}
	return id, true
}

func toAppError(err error) error {
	var blocked *GroupBlockedError
	switch {
	case errors.As(err, &blocked):
		return common.NewAppError("GROUP_NOT_CANCELLABLE", ErrGroupNotCancellable.Error(), http.StatusBadRequest, err).
			WithDetails(map[string]any{"blocking_order_ids": blocked.OrderIDs})
	case errors.Is(err, ErrNotFound):
		return common.NotFound("order not found", err)
	case errors.Is(err, ErrForbidden):
		return common.Forbidden(err.Error(), err)
	case errors.Is(err, ErrInvalidTransition):
		return common.InvalidState(err.Error(), err)
	default:
		return err
	}
}
