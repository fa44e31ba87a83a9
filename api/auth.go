package api

import (
	"context"
	"net/http"

	"github.com/shopsphere/storefront/models"
)

// Register creates an account; the response carries the identity with its
// bearer token already issued.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, error) {

	var identity models.Identity

	if err := c.do(ctx, http.MethodPost, "/api/register", "register", req, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, error) {

	var identity models.Identity

	if err := c.do(ctx, http.MethodPost, "/api/login", "login", req, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

// Profile fetches the identity behind the current token; the token field of
// the result is empty.
func (c *Client) Profile(ctx context.Context) (*models.Identity, error) {

	var identity models.Identity

	if err := c.do(ctx, http.MethodGet, "/api/profile", "profile", nil, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}
