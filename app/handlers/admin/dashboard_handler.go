package admin

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/models/other"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render   *render.Render
	orders   *services.OrderService
	products *services.ProductAdminService
	catalog  *services.CatalogService
	exports  *services.ExportService
	now      func() time.Time
}

func NewAdminHandler(
	render *render.Render,
	orders *services.OrderService,
	products *services.ProductAdminService,
	catalog *services.CatalogService,
	exports *services.ExportService,
) *AdminHandler {
	return &AdminHandler{
		render:   render,
		orders:   orders,
		products: products,
		catalog:  catalog,
		exports:  exports,
		now:      time.Now,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context(), h.now())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"stats": other.NewDashboardView(stats),
	})
}
