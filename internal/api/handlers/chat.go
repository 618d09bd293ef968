package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/utils"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

type ChatHandler struct {
	validator *validator.Validate
}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{validator: validator.New()}
}

func (h *ChatHandler) Open() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.OpenChat(r.Context()))
	}
}

func (h *ChatHandler) Transcript() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, st.Chat())
	}
}

// Send waits for the concierge's reply before answering.
func (h *ChatHandler) Send() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.ChatMessageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := st.SendChat(r.Context(), req.Text)
		if err != nil {
			writeError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
