package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-food/internal/common"
)

// Handler exposes public store lookups.
type Handler struct {
	Directory *Directory
}

// Store handles GET /stores/{id}.
func (h *Handler) Store(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid store id", nil)
		return
	}
	info, err := h.Directory.Store(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "store not found", nil)
			return
		}
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": info})
}
