package handlers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	catalog *services.CatalogService
	render  *render.Render
}

func NewProductHandler(catalog *services.CatalogService, r *render.Render) *ProductHandler {
	return &ProductHandler{catalog: catalog, render: r}
}

// ProductView is a product with its display price.
type ProductView struct {
	models.Product
	PriceLabel    string `json:"priceLabel"`
	CategoryLabel string `json:"categoryLabel"`
	Available     bool   `json:"inStock"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		Product:       p,
		PriceLabel:    format.Money(p.Price),
		CategoryLabel: models.CategoryDisplayName(p.Category),
		Available:     p.InStock(),
	}
}

func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

// ProductListHandler lists products, optionally filtered by ?category=.
// A store failure still renders an empty list along with the error.
func (h *ProductHandler) ProductListHandler(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category == "" {
		category = models.CategoryAll
	}

	products, err := h.catalog.ListByCategory(r.Context(), category)
	data := map[string]interface{}{
		"category": category,
		"products": NewProductViews(products),
	}
	if err != nil {
		data["error"] = err.Error()
		data["message"] = "Failed to load products. Please try again."
		data["messageStatus"] = "error"
		helpers.RenderJSON(h.render, w, r, helpers.ErrorStatus(err), data)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, data)
}

func (h *ProductHandler) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"product": NewProductView(*product),
	})
}

func (h *ProductHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}
