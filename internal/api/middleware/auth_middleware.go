package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/errors"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

type adminContextKey struct{}

type AuthMiddleware struct {
	tokens *auth.TokenIssuer
}

func NewAuthMiddleware(tokens *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate admits a request only with a valid admin token issued to the
// request's own session while that session shows the admin dashboard. It
// must run after SessionMiddleware.Require.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		st, ok := SessionFromContext(r.Context())
		if !ok {
			logger.Error("Admin route reached without a session")
			response.Error(w, errors.InternalError("Session is not resolved"))
			return
		}

		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims, err := m.tokens.Parse(tokenParts[1])
		if err != nil {
			logger.Warn("Admin token rejected", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if claims.SessionID != st.ID() {
			logger.Warn("Admin token presented by another session", slog.String("tokenSession", claims.SessionID))
			response.Error(w, errors.ForbiddenError("Token was not issued to this session"))
			return
		}

		if st.View() != models.ViewAdminDashboard {
			logger.Warn("Admin route outside the dashboard", slog.String("view", string(st.View())))
			response.Error(w, errors.ForbiddenError("Admin dashboard is not open"))
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey{}, claims)
		ctx = WithLogger(ctx, logger.With(slog.String("admin", claims.Identity)))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func AdminFromContext(ctx context.Context) (*models.AdminClaims, bool) {
	claims, ok := ctx.Value(adminContextKey{}).(*models.AdminClaims)
	return claims, ok
}
