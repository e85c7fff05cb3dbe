package handlers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/format"
	"github.com/unrolled/render"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	checkout *services.CheckoutService
	render   *render.Render
}

func NewCheckoutHandler(checkout *services.CheckoutService, r *render.Render) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, render: r}
}

// PlaceOrder submits the cart. The Idempotency-Key header, or the
// request_token field, makes retries return the first order instead of
// creating another.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form services.CheckoutForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}
	if key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader)); key != "" {
		form.RequestToken = key
	}

	order, created, err := h.checkout.Checkout(r.Context(), helpers.CurrentUserID(r), form)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	status := http.StatusOK
	message := "Order already placed."
	if created {
		status = http.StatusCreated
		message = "Order placed successfully!"
	}

	page := helpers.PageData(r)
	page.CartCount = 0
	page.Message = message
	page.MessageStatus = "success"

	helpers.RenderJSON(h.render, w, r, status, map[string]interface{}{
		"order":      order,
		"totalLabel": format.Money(order.Total),
		"created":    created,
		"redirect":   "/orders/" + order.ID,
		"page":       page,
	})
}
