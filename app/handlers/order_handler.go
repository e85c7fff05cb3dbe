package handlers

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orders *services.OrderService
	render *render.Render
}

func NewOrderHandler(orders *services.OrderService, r *render.Render) *OrderHandler {
	return &OrderHandler{orders: orders, render: r}
}

// MyOrders lists the signed-in user's orders, newest first.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListForUser(r.Context(), helpers.CurrentUserID(r))
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetForUser(r.Context(), helpers.CurrentUserID(r), mux.Vars(r)["id"])
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"order":      order,
		"totalLabel": format.Money(order.Total),
	})
}
