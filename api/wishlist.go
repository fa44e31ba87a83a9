package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopsphere/storefront/models"
)

func (c *Client) GetWishlist(ctx context.Context) (*models.Wishlist, error) {

	var wishlist models.Wishlist

	if err := c.do(ctx, http.MethodGet, "/api/wishlist", "wishlist", nil, &wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error) {

	var wishlist models.Wishlist

	req := &models.AddWishlistItemRequest{ProductID: productID}

	if err := c.do(ctx, http.MethodPost, "/api/wishlist", "wishlist", req, &wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) (*models.Wishlist, error) {

	var wishlist models.Wishlist

	if err := c.do(ctx, http.MethodDelete, "/api/wishlist/"+url.PathEscape(productID), "wishlist", nil, &wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}
