package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/chat"
	appErrors "github.com/lumiere-stone/atelier/internal/errors"
	"github.com/lumiere-stone/atelier/internal/router"
	"github.com/lumiere-stone/atelier/internal/session"
	"github.com/lumiere-stone/atelier/internal/utils/response"
)

// writeError maps domain errors onto the API error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.LoggerFromContext(r.Context())

	var (
		limited  *admin.RateLimitedError
		rejected *admin.RejectedError
	)

	switch {
	case errors.Is(err, session.ErrProductNotFound):
		response.Error(w, appErrors.NotFoundError("Product not found").WithError(err))
	case errors.Is(err, session.ErrInvalidSize):
		response.Error(w, appErrors.ValidationError("Ring size is not offered").WithError(err))
	case errors.Is(err, session.ErrUnknownCurrency):
		response.Error(w, appErrors.ValidationError("Unknown currency code").WithError(err))
	case errors.Is(err, router.ErrInvalidTransition):
		response.Error(w, appErrors.ConflictError("Not allowed from the current view").WithError(err))
	case errors.Is(err, chat.ErrNotOpen):
		response.Error(w, appErrors.ConflictError("Chat panel is not open").WithError(err))
	case errors.Is(err, chat.ErrBusy):
		response.Error(w, appErrors.ConflictError("A message is already awaiting a reply").WithError(err))
	case errors.As(err, &rejected) && rejected.Remaining >= 0:
		response.Error(w, appErrors.UnauthorizedError(auth.RejectionMessage).
			WithDetail(strconv.Itoa(rejected.Remaining)+" attempts remaining").WithError(err))
	case errors.Is(err, admin.ErrRejected):
		response.Error(w, appErrors.UnauthorizedError(auth.RejectionMessage).WithError(err))
	case errors.As(err, &limited):
		w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfter))
		response.Error(w, appErrors.TooManyRequestsError("Too many login attempts").
			WithDetail("Retry after "+strconv.Itoa(limited.RetryAfter)+" seconds").WithError(err))
	default:
		if appErr, ok := appErrors.IsAppError(err); ok {
			response.Error(w, appErr)
			return
		}
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		response.Error(w, appErrors.InternalError("An unexpected error occurred").WithError(err))
	}
}

// currentSession returns the session resolved by SessionMiddleware.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.State, bool) {
	st, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Error("Session missing from request context")
		response.Error(w, appErrors.InternalError("Session is not resolved"))
		return nil, false
	}
	return st, true
}
