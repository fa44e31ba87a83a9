package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopsphere/storefront/models"
)

// The order-creation response wraps the new order in a data envelope; reads
// return order documents directly.
type createOrderResponse struct {
	Data models.Order `json:"data"`
}

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	var resp createOrderResponse

	if err := c.do(ctx, http.MethodPost, "/api/orders", "orders", req, &resp); err != nil {
		return nil, err
	}

	return &resp.Data, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {

	var orders []models.Order

	if err := c.do(ctx, http.MethodGet, "/api/orders", "orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {

	var order models.Order

	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), "orders", nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
