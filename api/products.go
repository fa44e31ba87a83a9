package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopsphere/storefront/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {

	var products []models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products", "products", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), "products", nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, payload *models.ProductPayload) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodPost, "/api/products", "products", payload, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, payload *models.ProductPayload) (*models.Product, error) {

	var product models.Product

	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(productID), "products", payload, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(productID), "products", nil, nil)
}
