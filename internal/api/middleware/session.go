package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lumiere-stone/atelier/internal/errors"
	"github.com/lumiere-stone/atelier/internal/session"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

const SessionHeader = "X-Session-ID"

type sessionContextKey struct{}

type SessionMiddleware struct {
	registry *session.Registry
}

func NewSessionMiddleware(registry *session.Registry) *SessionMiddleware {
	return &SessionMiddleware{registry: registry}
}

// Require resolves the X-Session-ID header to a live session.
func (m *SessionMiddleware) Require(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		id := r.Header.Get(SessionHeader)
		if id == "" {
			logger.Warn("Missing session header")
			response.Error(w, errors.BadRequestError("X-Session-ID header is required"))
			return
		}

		st, ok := m.registry.Get(id)
		if !ok {
			logger.Warn("Unknown or expired session", slog.String("sessionId", id))
			response.Error(w, errors.NotFoundError("Session not found or expired"))
			return
		}

		ctx := WithSession(r.Context(), st)
		ctx = WithLogger(ctx, logger.With(slog.String("sessionId", st.ID())))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func WithSession(ctx context.Context, st *session.State) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, st)
}

func SessionFromContext(ctx context.Context) (*session.State, bool) {
	st, ok := ctx.Value(sessionContextKey{}).(*session.State)
	return st, ok
}
