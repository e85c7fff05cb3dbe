package admin

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/handlers"
	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"products": handlers.NewProductViews(products),
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form services.ProductForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	product, err := h.products.Create(r.Context(), form)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusCreated, map[string]interface{}{
		"product":       handlers.NewProductView(*product),
		"message":       "Product added successfully!",
		"messageStatus": "success",
	})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var form services.ProductForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	product, err := h.products.Update(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"product":       handlers.NewProductView(*product),
		"message":       "Product updated successfully!",
		"messageStatus": "success",
	})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"message":       "Product deleted successfully!",
		"messageStatus": "success",
	})
}
