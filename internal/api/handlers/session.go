package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/session"
	"github.com/lumiere-stone/atelier/internal/utils"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

type SessionHandler struct {
	registry  *session.Registry
	validator *validator.Validate
}

func NewSessionHandler(registry *session.Registry) *SessionHandler {
	return &SessionHandler{registry: registry, validator: validator.New()}
}

// CreateSession starts a visit. The body is optional and may carry the
// location fragment the page loaded with.
func (h *SessionHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateSessionRequest
		if r.ContentLength != 0 {
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				return
			}
		}

		st := h.registry.Create(req.Fragment)

		logger.Info("Session created", slog.String("sessionId", st.ID()), slog.String("view", string(st.View())))
		w.Header().Set(middleware.SessionHeader, st.ID())
		response.Success(w, http.StatusCreated, st.Snapshot())
	}
}

func (h *SessionHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.Snapshot())
	}
}

func (h *SessionHandler) Navigate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.NavigateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view := st.Navigate(req.Fragment)

		middleware.LoggerFromContext(r.Context()).Info("Navigation applied", slog.String("view", string(view)))
		response.Success(w, http.StatusOK, st.Snapshot())
	}
}

func (h *SessionHandler) SetCurrency() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.SetCurrencyRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := st.SetCurrency(req.Code); err != nil {
			writeError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, st.Snapshot())
	}
}
