package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/models/other"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/calc"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CartHandler struct {
	carts  *services.CartService
	render *render.Render
}

func NewCartHandler(carts *services.CartService, r *render.Render) *CartHandler {
	return &CartHandler{carts: carts, render: r}
}

type addToCartForm struct {
	ProductID string `json:"productId"`
}

type quantityForm struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetUserCart(r.Context(), helpers.CurrentUserID(r))
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	cart, err = h.carts.RefreshCart(r.Context(), cart)
	if err != nil {
		log.Printf("CartHandler.GetCart: %v", err)
	}

	h.renderCart(w, r, http.StatusOK, cart, nil)
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var form addToCartForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	cart, err := h.carts.AddItemToCart(r.Context(), helpers.CurrentUserID(r), form.ProductID)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	h.renderCart(w, r, http.StatusOK, cart, map[string]interface{}{
		"message":       "Added to cart!",
		"messageStatus": "success",
	})
}

func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.itemIndex(w, r)
	if !ok {
		return
	}

	var form quantityForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	cart, notice, err := h.carts.UpdateCartItemQty(r.Context(), helpers.CurrentUserID(r), index, form.Quantity)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	extra := map[string]interface{}{}
	if notice != nil {
		extra["message"] = "This product is out of stock and was removed from your cart."
		if notice.Stock > 0 {
			extra["message"] = fmt.Sprintf("Only %d items available in stock!", notice.Stock)
		}
		extra["messageStatus"] = "warning"
		extra["clamped"] = true
	}
	h.renderCart(w, r, http.StatusOK, cart, extra)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.itemIndex(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItemFromCart(r.Context(), helpers.CurrentUserID(r), index)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	h.renderCart(w, r, http.StatusOK, cart, map[string]interface{}{
		"message":       "Item removed from cart.",
		"messageStatus": "success",
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := helpers.CurrentUserID(r)
	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	h.renderCart(w, r, http.StatusOK, models.NewCart(userID), map[string]interface{}{
		"message":       "Cart cleared.",
		"messageStatus": "success",
	})
}

// CartCount reports the Σ quantity badge value.
func (h *CartHandler) CartCount(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": helpers.CartCount(r)})
}

func (h *CartHandler) itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		helpers.RenderError(h.render, w, r, &services.NotFoundError{Kind: "cart item", ID: raw})
		return 0, false
	}
	return index, true
}

// renderCart writes the cart with the badge count taken from it.
func (h *CartHandler) renderCart(w http.ResponseWriter, r *http.Request, status int, cart *models.Cart, extra map[string]interface{}) {
	count := cart.ItemCount()

	data := extra
	if data == nil {
		data = map[string]interface{}{}
	}
	data["cart"] = other.NewCartView(cart, calc.CartTotal(cart.Items))

	page := helpers.PageData(r)
	page.CartCount = count
	if msg, ok := data["message"].(string); ok {
		page.Message = msg
	}
	if status, ok := data["messageStatus"].(string); ok {
		page.MessageStatus = status
	}
	data["page"] = page

	helpers.RenderJSON(h.render, w, r, status, data)
}
