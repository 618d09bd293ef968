package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/utils"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

type StorefrontHandler struct {
	validator *validator.Validate
}

func NewStorefrontHandler() *StorefrontHandler {
	return &StorefrontHandler{validator: validator.New()}
}

func (h *StorefrontHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.Products())
	}
}

func (h *StorefrontHandler) ToggleWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		id := r.PathValue("id")
		wishlisted := st.ToggleWishlist(id)

		response.Success(w, http.StatusOK, map[string]any{"product_id": id, "wishlisted": wishlisted})
	}
}

func (h *StorefrontHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.Cart())
	}
}

func (h *StorefrontHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := st.AddToCart(req.ProductID, req.SelectedSize)
		if err != nil {
			writeError(w, r, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Item added to cart",
			slog.String("productId", item.ID), slog.String("size", item.SelectedSize))
		response.Success(w, http.StatusCreated, st.Cart())
	}
}

// Checkout answers 200 with placed == false for an empty cart.
func (h *StorefrontHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		resp := st.Checkout(r.Context())
		if !resp.Placed {
			response.Success(w, http.StatusOK, resp)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *StorefrontHandler) OpenSidebar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.OpenSidebarRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sb, err := st.OpenSidebar(r.Context(), req.ProductID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		response.Success(w, http.StatusAccepted, sb)
	}
}

func (h *StorefrontHandler) GetSidebar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.Sidebar())
	}
}

func (h *StorefrontHandler) CloseSidebar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		st.CloseSidebar()
		response.Success(w, http.StatusOK, st.Sidebar())
	}
}
