package admin

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/gorilla/mux"
)

type statusForm struct {
	Status string `json:"status"`
}

// ListOrders supports ?status= (or "all") and ?q= for search.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := services.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("q"),
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"filter": map[string]string{"status": filter.Status, "q": filter.Search},
	})
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var form statusForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], form.Status)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"order":         order,
		"message":       "Order status updated!",
		"messageStatus": "success",
	})
}
