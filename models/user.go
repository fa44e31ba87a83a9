package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated user as returned by the register and login
// endpoints, credential included. It is what gets persisted between runs.
type Identity struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Claims mirrors the bearer token payload. The client never verifies the
// signature (it has no key); it only reads the expiry at bootstrap.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthState is the value published to cart/wishlist whenever the session
// transitions. Identity is nil when Authenticated is false.
type AuthState struct {
	Authenticated bool
	Identity      *Identity
}
