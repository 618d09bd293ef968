package models

import "time"

type View string

const (
	ViewStorefront     View = "storefront"
	ViewAdminLogin     View = "admin_login"
	ViewAdminDashboard View = "admin_dashboard"
)

type CreateSessionRequest struct {
	Fragment string `json:"fragment"`
}

type NavigateRequest struct {
	Fragment string `json:"fragment"`
}

type SessionSnapshot struct {
	ID            string       `json:"id"`
	View          View         `json:"view"`
	Fragment      string       `json:"fragment"`
	Currency      CurrencyCode `json:"currency"`
	CartCount     int          `json:"cart_count"`
	WishlistCount int          `json:"wishlist_count"`
	CreatedAt     time.Time    `json:"created_at"`
}

type OpenSidebarRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Sidebar is the quick-view panel: the product shown and its narrative.
type Sidebar struct {
	Open         bool     `json:"open"`
	Product      *Product `json:"product,omitempty"`
	DisplayPrice string   `json:"display_price,omitempty"`
	Description  string   `json:"description"`
	Loading      bool     `json:"loading"`
}
