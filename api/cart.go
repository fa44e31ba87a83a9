package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopsphere/storefront/models"
)

// Every cart endpoint responds with the full updated cart; the stores replace
// their held snapshot with it wholesale.

func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {

	var cart models.Cart

	if err := c.do(ctx, http.MethodGet, "/api/cart", "cart", nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {

	var cart models.Cart

	req := &models.AddCartItemRequest{ProductID: productID, Quantity: quantity}

	if err := c.do(ctx, http.MethodPost, "/api/cart", "cart", req, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {

	var cart models.Cart

	req := &models.UpdateCartItemRequest{Quantity: quantity}

	if err := c.do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(productID), "cart", req, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) (*models.Cart, error) {

	var cart models.Cart

	if err := c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(productID), "cart", nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}
