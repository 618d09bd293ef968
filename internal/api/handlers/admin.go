package handlers

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	appErrors "github.com/lumiere-stone/atelier/internal/errors"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/utils"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

type AdminHandler struct {
	login     *admin.LoginService
	validator *validator.Validate
}

func NewAdminHandler(login *admin.LoginService) *AdminHandler {
	return &AdminHandler{login: login, validator: validator.New()}
}

func (h *AdminHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.login.Login(r.Context(), st, clientAddress(r), req)
		if err != nil {
			logger.Warn("Admin login failed", slog.String("error", err.Error()))
			writeError(w, r, err)
			return
		}

		logger.Info("Admin authenticated", slog.String("admin", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

// clientAddress is the host part of the peer address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *AdminHandler) CancelLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := st.CancelLogin(); err != nil {
			writeError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, st.Snapshot())
	}
}

func (h *AdminHandler) Exit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := st.ExitAdmin(); err != nil {
			writeError(w, r, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		if claims, ok := middleware.AdminFromContext(r.Context()); ok && claims.IssuedAt != nil {
			logger = logger.With(slog.Duration("sessionLength", time.Since(claims.IssuedAt.Time)))
		}
		logger.Info("Admin session closed")
		response.Success(w, http.StatusOK, st.Snapshot())
	}
}

func (h *AdminHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.CatalogProducts())
	}
}

// CreateProduct answers 200 with created == false when the draft lacks a
// name or price.
func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var draft models.ProductDraft
		if !utils.ParseAndValidate(r, w, &draft, h.validator) {
			return
		}

		p, created := st.AddProduct(draft)
		if !created {
			response.Success(w, http.StatusOK, models.CreateProductResponse{Created: false})
			return
		}

		response.Success(w, http.StatusCreated, models.CreateProductResponse{Created: true, Product: &p})
	}
}

// RemoveProduct deletes only with confirm=true. An unknown id or a missing
// confirmation removes nothing.
func (h *AdminHandler) RemoveProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		confirmed := r.URL.Query().Get("confirm") == "true"
		removed := st.RemoveProduct(r.PathValue("id"), confirmed)

		response.Success(w, http.StatusOK, models.RemoveProductResponse{Removed: removed})
	}
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		orders := st.Orders()
		response.Success(w, http.StatusOK, map[string]any{
			"orders":  orders,
			"summary": admin.Summary(orders),
		})
	}
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		status, err := models.ParseOrderStatus(string(req.Status))
		if err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		order, updated := st.UpdateOrderStatus(r.PathValue("id"), status)
		if !updated {
			response.Success(w, http.StatusOK, models.UpdateOrderStatusResponse{Updated: false})
			return
		}

		response.Success(w, http.StatusOK, models.UpdateOrderStatusResponse{Updated: true, Order: &order})
	}
}

func (h *AdminHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, admin.Customers(st.Orders()))
	}
}
