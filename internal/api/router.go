// Package api assembles the storefront and admin HTTP surface.
package api

import (
	"net/http"

	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/api/handlers"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/metrics"
	"github.com/lumiere-stone/atelier/internal/session"
)

type Deps struct {
	Registry *session.Registry
	Login    *admin.LoginService
	Tokens   *auth.TokenIssuer

	// Health is mounted at /health when set.
	Health http.Handler
}

func NewRouter(d Deps) *http.ServeMux {
	sessionHandler := handlers.NewSessionHandler(d.Registry)
	storefrontHandler := handlers.NewStorefrontHandler()
	chatHandler := handlers.NewChatHandler()
	adminHandler := handlers.NewAdminHandler(d.Login)

	sessions := middleware.NewSessionMiddleware(d.Registry)
	authMiddleware := middleware.NewAuthMiddleware(d.Tokens)

	inSession := func(h http.HandlerFunc) http.HandlerFunc { return sessions.Require(h) }
	asAdmin := func(h http.HandlerFunc) http.HandlerFunc { return sessions.Require(authMiddleware.Authenticate(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/sessions", sessionHandler.CreateSession())
	mux.HandleFunc("GET /api/v1/session", inSession(sessionHandler.GetSession()))
	mux.HandleFunc("POST /api/v1/navigation", inSession(sessionHandler.Navigate()))
	mux.HandleFunc("PUT /api/v1/currency", inSession(sessionHandler.SetCurrency()))

	mux.HandleFunc("GET /api/v1/products", inSession(storefrontHandler.ListProducts()))
	mux.HandleFunc("POST /api/v1/wishlist/{id}/toggle", inSession(storefrontHandler.ToggleWishlist()))
	mux.HandleFunc("GET /api/v1/cart", inSession(storefrontHandler.GetCart()))
	mux.HandleFunc("POST /api/v1/cart/items", inSession(storefrontHandler.AddItem()))
	mux.HandleFunc("POST /api/v1/checkout", inSession(storefrontHandler.Checkout()))
	mux.HandleFunc("POST /api/v1/sidebar", inSession(storefrontHandler.OpenSidebar()))
	mux.HandleFunc("GET /api/v1/sidebar", inSession(storefrontHandler.GetSidebar()))
	mux.HandleFunc("DELETE /api/v1/sidebar", inSession(storefrontHandler.CloseSidebar()))

	mux.HandleFunc("POST /api/v1/chat/open", inSession(chatHandler.Open()))
	mux.HandleFunc("GET /api/v1/chat", inSession(chatHandler.Transcript()))
	mux.HandleFunc("POST /api/v1/chat/messages", inSession(chatHandler.Send()))

	mux.HandleFunc("POST /api/v1/admin/login", inSession(adminHandler.Login()))
	mux.HandleFunc("POST /api/v1/admin/login/cancel", inSession(adminHandler.CancelLogin()))
	mux.HandleFunc("POST /api/v1/admin/exit", asAdmin(adminHandler.Exit()))
	mux.HandleFunc("GET /api/v1/admin/products", asAdmin(adminHandler.ListProducts()))
	mux.HandleFunc("POST /api/v1/admin/products", asAdmin(adminHandler.CreateProduct()))
	mux.HandleFunc("DELETE /api/v1/admin/products/{id}", asAdmin(adminHandler.RemoveProduct()))
	mux.HandleFunc("GET /api/v1/admin/orders", asAdmin(adminHandler.ListOrders()))
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", asAdmin(adminHandler.UpdateOrderStatus()))
	mux.HandleFunc("GET /api/v1/admin/customers", asAdmin(adminHandler.ListCustomers()))

	mux.Handle("GET /metrics", metrics.Handler())
	if d.Health != nil {
		mux.Handle("GET /health", d.Health)
	}

	return mux
}
