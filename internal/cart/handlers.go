package cart

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-food/internal/common"
)

// Handler exposes the read side of the cart.
type Handler struct {
	Store *Store
}

type lineView struct {
	ID           string  `json:"id"`
	FoodID       string  `json:"food_id"`
	SizeOptionID *string `json:"size_option_id"`
	Quantity     int32   `json:"quantity"`
	Note         string  `json:"note"`
}

type storeGroupView struct {
	StoreID string     `json:"store_id"`
	Items   []lineView `json:"items"`
}

// Get handles GET /cart, returning lines grouped by store.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid subject", nil)
		return
	}
	lines, err := h.Store.Lines(r.Context(), uid)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	grouping := GroupByStore(lines)
	groups := make([]storeGroupView, 0, grouping.Len())
	for _, storeID := range grouping.StoreIDs {
		group := storeGroupView{StoreID: storeID.String()}
		for _, line := range grouping.Lines[storeID] {
			view := lineView{
				ID:       line.ID.String(),
				FoodID:   line.FoodID.String(),
				Quantity: line.Quantity,
				Note:     line.Note,
			}
			if line.SizeOptionID != nil {
				opt := line.SizeOptionID.String()
				view.SizeOptionID = &opt
			}
			group.Items = append(group.Items, view)
		}
		groups = append(groups, group)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"stores":     groups,
		"item_count": len(lines),
	}})
}
