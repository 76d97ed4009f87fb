package backend

import (
	"net/http"

	"github.com/aussiebroadwan/shopfront/pkg/httpx"
)

type addToCartBody struct {
	Name     string `json:"name" validate:"notblank"`
	Quantity int    `json:"quantity" validate:"ne=0"`
}

type removeFromCartBody struct {
	Name string `json:"name" validate:"notblank"`
}

type CartHandler struct {
	Store *Store
}

// HandleGet returns the caller's cart.
//
//	@Summary	Get cart
//	@Tags		Cart
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is Cart"
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/cart [get].
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Cart fetched successfully", h.Store.Cart(actorFrom(r).ID))
}

// HandleAdd changes a line quantity by a signed delta.
//
//	@Summary	Add to cart
//	@Tags		Cart
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		addToCartBody	true	"product name and quantity delta"
//	@Success	200		{object}	httpx.Envelope	"data is Cart"
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/cart [post].
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var body addToCartBody
	if !decodeValid(w, r, &body) {
		return
	}

	c, err := h.Store.AddToCart(actorFrom(r).ID, body.Name, body.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Cart updated successfully", c)
}

// HandleRemove drops a line.
//
//	@Summary	Remove from cart
//	@Tags		Cart
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		removeFromCartBody	true	"product name"
//	@Success	200		{object}	httpx.Envelope		"data is Cart"
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/cart/remove [post].
func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var body removeFromCartBody
	if !decodeValid(w, r, &body) {
		return
	}

	c, err := h.Store.RemoveFromCart(actorFrom(r).ID, body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Item removed from cart", c)
}

// HandleClear empties the cart.
//
//	@Summary	Clear cart
//	@Tags		Cart
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope
//	@Router		/cart/clear [delete].
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearCart(actorFrom(r).ID)
	httpx.WriteData(w, http.StatusOK, "Cart cleared successfully", nil)
}
