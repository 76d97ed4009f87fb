package shopsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateOrder checks out the caller's cart.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	return c.orderCall(ctx, http.MethodPost, "/order", req)
}

// ListOrders returns the caller's orders.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	return c.ordersCall(ctx, "/order")
}

// ListAllOrders returns every order. Admin only.
func (c *Client) ListAllOrders(ctx context.Context) ([]Order, error) {
	return c.ordersCall(ctx, "/order/all")
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	return c.orderCall(ctx, http.MethodGet, orderPath(id, ""), nil)
}

// UpdateOrder edits delivery details of a pending order.
func (c *Client) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	return c.orderCall(ctx, http.MethodPut, orderPath(id, ""), req)
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id string) (*Order, error) {
	return c.orderCall(ctx, http.MethodPut, orderPath(id, "/cancel"), struct{}{})
}

// UpdateOrderStatus moves an order to status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	return c.orderCall(ctx, http.MethodPut, orderPath(id, "/status"), UpdateStatusRequest{Status: status})
}

// OrderStats returns the caller's order summary.
func (c *Client) OrderStats(ctx context.Context) (*OrderStats, error) {
	var stats OrderStats
	if _, err := c.do(ctx, http.MethodGet, "/order/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func orderPath(id, suffix string) string {
	return "/order/" + url.PathEscape(id) + suffix
}

func (c *Client) orderCall(ctx context.Context, method, path string, in any) (*Order, error) {
	var order Order
	if _, err := c.do(ctx, method, path, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ordersCall(ctx context.Context, path string) ([]Order, error) {
	orders := []Order{}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
