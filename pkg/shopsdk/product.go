package shopsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListProducts returns the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	products := []Product{}
	if _, err := c.do(ctx, http.MethodGet, "/product", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a catalog entry by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (*Product, error) {
	var p Product
	if _, err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(slug), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
