package admin

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
)

// ListCategories shows how many products each category holds.
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}
