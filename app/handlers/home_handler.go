package handlers

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/unrolled/render"
)

const featuredProductsLimit = 8

type HomeHandler struct {
	render  *render.Render
	catalog *services.CatalogService
}

func NewHomeHandler(r *render.Render, catalog *services.CatalogService) *HomeHandler {
	return &HomeHandler{
		render:  r,
		catalog: catalog,
	}
}

// Home returns the storefront landing data: categories and the newest
// products.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	products, err := h.catalog.ListAll(r.Context())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}
	if len(products) > featuredProductsLimit {
		products = products[:featuredProductsLimit]
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"products":   NewProductViews(products),
	})
}
