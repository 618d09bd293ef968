package models

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success    bool   `json:"success"`
	Token      string `json:"token,omitempty"`
	ExpiresIn  int    `json:"expires_in,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Message    string `json:"message,omitempty"`
	View       View   `json:"view"`
}

// AdminClaims binds an admin token to the session that authenticated.
type AdminClaims struct {
	SessionID string `json:"session_id"`
	Identity  string `json:"identity"`
	jwt.RegisteredClaims
}

type CreateProductResponse struct {
	Created bool     `json:"created"`
	Product *Product `json:"product,omitempty"`
}

type RemoveProductResponse struct {
	Removed bool `json:"removed"`
}

type UpdateOrderStatusResponse struct {
	Updated bool   `json:"updated"`
	Order   *Order `json:"order,omitempty"`
}
