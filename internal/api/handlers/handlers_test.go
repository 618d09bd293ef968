package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/api/handlers"
	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/chat"
	"github.com/lumiere-stone/atelier/internal/llm/mocks"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/ratelimit"
	"github.com/lumiere-stone/atelier/internal/session"
	"github.com/lumiere-stone/atelier/internal/testutils"
	"github.com/lumiere-stone/atelier/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func body(t *testing.T, v any) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// countingLimiter allows max attempts per client and refuses the rest.
type countingLimiter struct {
	mu       sync.Mutex
	max      int
	attempts map[string]int
}

func (l *countingLimiter) Check(_ context.Context, client string) (ratelimit.Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts[client]++
	if n := l.attempts[client]; n <= l.max {
		return ratelimit.Decision{Allowed: true, Remaining: l.max - n}, nil
	}
	return ratelimit.Decision{Allowed: false, RetryAfter: 60}, nil
}

func newRegistry() *session.Registry {
	return session.NewRegistry(session.Dependencies{}, time.Hour)
}

func TestCreateSession(t *testing.T) {
	h := handlers.NewSessionHandler(newRegistry())

	t.Run("Success - Without Body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutSession(http.MethodPost, "/api/v1/sessions", nil, nil)

		h.CreateSession().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var snap models.SessionSnapshot
		env := decode(t, rr, &snap)
		assert.True(t, env.Success)
		assert.Equal(t, models.ViewStorefront, snap.View)
		assert.Equal(t, snap.ID, rr.Header().Get("X-Session-ID"))
	})

	t.Run("Success - Admin Fragment", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutSession(http.MethodPost, "/api/v1/sessions",
			body(t, models.CreateSessionRequest{Fragment: "#admin"}), nil)

		h.CreateSession().ServeHTTP(rr, req)

		var snap models.SessionSnapshot
		decode(t, rr, &snap)
		assert.Equal(t, models.ViewAdminLogin, snap.View)
		assert.Equal(t, "#admin", snap.Fragment)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutSession(http.MethodPost, "/api/v1/sessions", bytes.NewReader([]byte("{bad")), nil)

		h.CreateSession().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSetCurrency(t *testing.T) {
	reg := newRegistry()
	h := handlers.NewSessionHandler(reg)
	st := reg.Create("")

	t.Run("Success", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPut, "/api/v1/currency",
			body(t, models.SetCurrencyRequest{Code: models.CurrencyGBP}), st, nil)

		h.SetCurrency().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.CurrencyGBP, st.Snapshot().Currency)
	})

	t.Run("Invalid Input - Unknown Code", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPut, "/api/v1/currency",
			body(t, map[string]string{"code": "JPY"}), st, nil)

		h.SetCurrency().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		env := decode(t, rr, nil)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, models.CurrencyGBP, st.Snapshot().Currency)
	})
}

func TestStorefrontHandler(t *testing.T) {
	reg := newRegistry()
	h := handlers.NewStorefrontHandler()
	st := reg.Create("")

	t.Run("ListProducts - Display Prices", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/products", nil, st, nil)

		h.ListProducts().ServeHTTP(rr, req)

		var products []models.ProductView
		decode(t, rr, &products)
		require.Len(t, products, 6)
		assert.Equal(t, "$12,500", products[0].DisplayPrice)
	})

	t.Run("ToggleWishlist - Id Outside Catalog", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/wishlist/x/toggle", nil, st,
			map[string]string{"id": "x"})

		h.ToggleWishlist().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]any
		decode(t, rr, &resp)
		assert.Equal(t, true, resp["wishlisted"])

		rr = httptest.NewRecorder()
		h.ToggleWishlist().ServeHTTP(rr, req)
		decode(t, rr, &resp)
		assert.Equal(t, false, resp["wishlisted"])
	})

	t.Run("AddItem - Invalid Ring Size", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items",
			body(t, models.AddItemRequest{ProductID: "1", SelectedSize: "12"}), st, nil)

		h.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, st.Cart().Items)
	})

	t.Run("Checkout - Empty Cart Places Nothing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/checkout", nil, st, nil)

		h.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.CheckoutResponse
		decode(t, rr, &resp)
		assert.False(t, resp.Placed)
	})

	t.Run("AddItem Then Checkout", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items",
			body(t, models.AddItemRequest{ProductID: "1", SelectedSize: "7.5"}), st, nil)
		h.AddItem().ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/checkout", nil, st, nil)
		h.Checkout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp models.CheckoutResponse
		decode(t, rr, &resp)
		require.True(t, resp.Placed)
		assert.Equal(t, models.CheckoutConfirmation, resp.Message)
		require.Len(t, resp.Order.Items, 1)
		assert.Equal(t, "7.5", resp.Order.Items[0].SelectedSize)
	})

	t.Run("Sidebar - Open Then Close", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/sidebar",
			body(t, models.OpenSidebarRequest{ProductID: "2"}), st, nil)
		h.OpenSidebar().ServeHTTP(rr, req)
		require.Equal(t, http.StatusAccepted, rr.Code)

		st.WaitNarratives()
		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/sidebar", nil, st, nil)
		h.GetSidebar().ServeHTTP(rr, req)

		var sb models.Sidebar
		decode(t, rr, &sb)
		assert.True(t, sb.Open)
		assert.False(t, sb.Loading)
		assert.NotEmpty(t, sb.Description)

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/sidebar", nil, st, nil)
		h.CloseSidebar().ServeHTTP(rr, req)
		assert.False(t, st.Sidebar().Open)
	})
}

func TestChatHandler(t *testing.T) {
	conv := new(mocks.Conversation)
	starter := new(mocks.ConversationStarter)
	starter.On("StartConversation", mock.Anything, chat.SystemInstruction).Return(conv, nil).Once()
	conv.On("Send", mock.Anything, "Which cut sparkles most?").Return("The Excellent cut, Madame.", nil).Once()

	reg := session.NewRegistry(session.Dependencies{Chat: starter}, time.Hour)
	st := reg.Create("")
	h := handlers.NewChatHandler()

	t.Run("Send - Panel Not Open", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/chat/messages",
			body(t, models.ChatMessageRequest{Text: "hello"}), st, nil)

		h.Send().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Open Then Send", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/chat/open", nil, st, nil)
		h.Open().ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/chat/messages",
			body(t, models.ChatMessageRequest{Text: "Which cut sparkles most?"}), st, nil)
		h.Send().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.ChatResponse
		decode(t, rr, &resp)
		require.Len(t, resp.Transcript, 3)
		assert.Equal(t, "The Excellent cut, Madame.", resp.Transcript[2].Text)
	})

	starter.AssertExpectations(t)
	conv.AssertExpectations(t)
}

func TestAdminHandler(t *testing.T) {
	reg := newRegistry()
	tokens := auth.NewTokenIssuer([]byte("k"), time.Hour)
	login := admin.NewLoginService(auth.NewGate(auth.StaticVerifier{Identity: "admin", Secret: "luxury2024"}), nil, tokens)
	h := handlers.NewAdminHandler(login)

	t.Run("Login - Rejected", func(t *testing.T) {
		st := reg.Create("#admin")
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "nope"}), st, nil)

		h.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		env := decode(t, rr, nil)
		assert.Equal(t, auth.RejectionMessage, env.Error.Message)
		assert.Equal(t, models.ViewAdminLogin, st.View())
	})

	t.Run("Login - Budget Is Per Client Address", func(t *testing.T) {
		limiter := &countingLimiter{max: 1, attempts: make(map[string]int)}
		h := handlers.NewAdminHandler(admin.NewLoginService(
			auth.NewGate(auth.StaticVerifier{Identity: "admin", Secret: "luxury2024"}), limiter, tokens))

		first := httptest.NewRecorder()
		h.Login().ServeHTTP(first, testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "nope"}), reg.Create("#admin"), nil))

		assert.Equal(t, http.StatusUnauthorized, first.Code)
		env := decode(t, first, nil)
		assert.Equal(t, []string{"0 attempts remaining"}, env.Error.Details)

		// A fresh session from the same address gets no new budget.
		fresh := reg.Create("#admin")
		second := httptest.NewRecorder()
		h.Login().ServeHTTP(second, testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "luxury2024"}), fresh, nil))

		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, "60", second.Header().Get("Retry-After"))
		assert.Equal(t, models.ViewAdminLogin, fresh.View())

		other := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "luxury2024"}), reg.Create("#admin"), nil)
		req.RemoteAddr = "203.0.113.9:5500"
		h.Login().ServeHTTP(other, req)

		assert.Equal(t, http.StatusOK, other.Code)
		assert.Equal(t, 1, limiter.attempts["203.0.113.9"])
	})

	t.Run("Login - Wrong View", func(t *testing.T) {
		st := reg.Create("")
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "luxury2024"}), st, nil)

		h.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Login - Success", func(t *testing.T) {
		st := reg.Create("#admin")
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/login",
			body(t, models.LoginRequest{Username: "admin", Password: "luxury2024"}), st, nil)

		h.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.LoginResponse
		decode(t, rr, &resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.ViewAdminDashboard, st.View())
	})

	t.Run("CreateProduct - Missing Name Is A No-op", func(t *testing.T) {
		st := testutils.AdminSession(reg)
		draft := models.ProductDraft{
			Category: models.CategoryRing,
			PriceUSD: 500,
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 1, Cut: "Good", Color: "H", Clarity: "VS1"},
		}
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/products", body(t, draft), st, nil)

		h.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.CreateProductResponse
		decode(t, rr, &resp)
		assert.False(t, resp.Created)
		assert.Len(t, st.CatalogProducts(), 6)
	})

	t.Run("CreateProduct - Invalid Grade", func(t *testing.T) {
		st := testutils.AdminSession(reg)
		draft := models.ProductDraft{
			Name:     "Comet",
			Category: models.CategoryRing,
			PriceUSD: 500,
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 1, Cut: "Good", Color: "Z", Clarity: "VS1"},
		}
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/products", body(t, draft), st, nil)

		h.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("CreateProduct - Price Out Of Range", func(t *testing.T) {
		st := testutils.AdminSession(reg)
		draft := models.ProductDraft{
			Name:     "Comet",
			Category: models.CategoryRing,
			PriceUSD: 1e19,
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 1, Cut: "Good", Color: "H", Clarity: "VS1"},
		}
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/products", body(t, draft), st, nil)

		h.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "must be at most")
		assert.Len(t, st.CatalogProducts(), 6)
	})

	t.Run("RemoveProduct - Needs Confirmation", func(t *testing.T) {
		st := testutils.AdminSession(reg)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/admin/products/5", nil, st,
			map[string]string{"id": "5"})
		h.RemoveProduct().ServeHTTP(rr, req)

		var resp models.RemoveProductResponse
		decode(t, rr, &resp)
		assert.False(t, resp.Removed)

		rr = httptest.NewRecorder()
		req = testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/admin/products/5?confirm=true", nil, st,
			map[string]string{"id": "5"})
		h.RemoveProduct().ServeHTTP(rr, req)

		decode(t, rr, &resp)
		assert.True(t, resp.Removed)
		assert.Len(t, st.CatalogProducts(), 5)
	})

	t.Run("UpdateOrderStatus - Unknown Order", func(t *testing.T) {
		st := testutils.AdminSession(reg)
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/api/v1/admin/orders/x/status",
			body(t, models.UpdateOrderStatusRequest{Status: models.OrderStatusShipped}), st,
			map[string]string{"id": "x"})

		h.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp models.UpdateOrderStatusResponse
		decode(t, rr, &resp)
		assert.False(t, resp.Updated)
	})

	t.Run("UpdateOrderStatus - Invalid Status", func(t *testing.T) {
		st := testutils.AdminSession(reg)
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/api/v1/admin/orders/x/status",
			body(t, map[string]string{"status": "Lost"}), st, map[string]string{"id": "x"})

		h.UpdateOrderStatus().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
