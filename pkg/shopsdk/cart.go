package shopsdk

import (
	"context"
	"net/http"
)

// GetCart returns the caller's cart, or nil when the backend has none.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	return c.cartCall(ctx, http.MethodGet, "/cart", nil)
}

// AddToCart adds quantity units of the named product.
func (c *Client) AddToCart(ctx context.Context, name string, quantity int) (*Cart, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart", AddToCartRequest{Name: name, Quantity: quantity})
}

// RemoveFromCart drops the named product's line.
func (c *Client) RemoveFromCart(ctx context.Context, name string) (*Cart, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart/remove", RemoveFromCartRequest{Name: name})
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
	return err
}

func (c *Client) cartCall(ctx context.Context, method, path string, in any) (*Cart, error) {
	var cart *Cart
	if _, err := c.do(ctx, method, path, in, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}
