package backend

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/shopfront/internal/order"
	"github.com/aussiebroadwan/shopfront/pkg/httpx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

type createOrderBody struct {
	Address     string `json:"address" validate:"notblank"`
	PhoneNumber string `json:"phonenumber" validate:"notblank,phone"`
}

type updateOrderBody struct {
	Address     string `json:"address" validate:"omitempty,notblank"`
	PhoneNumber string `json:"phonenumber" validate:"omitempty,phone"`
}

type updateStatusBody struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	Store *Store
}

// HandleCreate checks out the caller's cart. One order is created per
// cart line; the first is returned.
//
//	@Summary	Place order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createOrderBody	true	"delivery details"
//	@Success	201		{object}	httpx.Envelope	"data is Order"
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/order [post].
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if !decodeValid(w, r, &body) {
		return
	}

	actor := actorFrom(r)
	placed, err := h.Store.PlaceOrder(actor.ID, strings.TrimSpace(body.Address), validate.NormalizePhone(body.PhoneNumber))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("order placed", "user_id", actor.ID, "orders", len(placed))
	httpx.WriteData(w, http.StatusCreated, "Order placed successfully", placed[0])
}

// HandleListMine returns the caller's orders.
//
//	@Summary	List my orders
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is []Order"
//	@Router		/order [get].
func (h *OrderHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Orders fetched successfully", h.Store.Orders(actorFrom(r).ID))
}

// HandleListAll returns every order.
//
//	@Summary	List all orders
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is []Order"
//	@Failure	403	{object}	httpx.Envelope
//	@Router		/order/all [get].
func (h *OrderHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Orders fetched successfully", h.Store.AllOrders())
}

// HandleStats summarizes the caller's orders.
//
//	@Summary	Order statistics
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is OrderStats"
//	@Router		/order/stats [get].
func (h *OrderHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Order stats fetched successfully", h.Store.Stats(actorFrom(r).ID))
}

// HandleGet returns one order to its owner or an admin.
//
//	@Summary	Get order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string			true	"order id"
//	@Success	200	{object}	httpx.Envelope	"data is Order"
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/order/{id} [get].
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	o, err := h.Store.Order(r.PathValue("id"), actorFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Order fetched successfully", o)
}

// HandleUpdate edits delivery details of a pending order.
//
//	@Summary	Update order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"order id"
//	@Param		body	body		updateOrderBody	true	"delivery details"
//	@Success	200		{object}	httpx.Envelope	"data is Order"
//	@Failure	403		{object}	httpx.Envelope
//	@Router		/order/{id} [put].
func (h *OrderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateOrderBody
	if !decodeValid(w, r, &body) {
		return
	}

	phone := ""
	if body.PhoneNumber != "" {
		phone = validate.NormalizePhone(body.PhoneNumber)
	}
	o, err := h.Store.UpdateOrder(r.PathValue("id"), actorFrom(r), strings.TrimSpace(body.Address), phone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Order updated successfully", o)
}

// HandleCancel cancels a pending order.
//
//	@Summary	Cancel order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string			true	"order id"
//	@Success	200	{object}	httpx.Envelope	"data is Order"
//	@Failure	403	{object}	httpx.Envelope
//	@Router		/order/{id}/cancel [put].
func (h *OrderHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	o, err := h.Store.CancelOrder(r.PathValue("id"), actorFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Order canceled successfully", o)
}

// HandleSetStatus moves an order to another status.
//
//	@Summary	Set order status
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"order id"
//	@Param		body	body		updateStatusBody	true	"new status"
//	@Success	200		{object}	httpx.Envelope		"data is Order"
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	403		{object}	httpx.Envelope
//	@Router		/order/{id}/status [put].
func (h *OrderHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var body updateStatusBody
	if !decodeValid(w, r, &body) {
		return
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	o, err := h.Store.SetOrderStatus(r.PathValue("id"), actorFrom(r), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Order status updated successfully", o)
}
