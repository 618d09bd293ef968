package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lumiere-stone/atelier/internal/auth"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/ratelimit"
	"github.com/lumiere-stone/atelier/internal/router"
)

var (
	ErrRejected    = errors.New(auth.RejectionMessage)
	ErrRateLimited = errors.New("too many login attempts")
)

// LoginTarget is the session side of a login: its view and the transition
// into the dashboard.
type LoginTarget interface {
	ID() string
	View() models.View
	LoginSucceeded() error
}

type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s, retry after %ds", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }

// RejectedError is a refused login. Remaining is the number of attempts the
// client has left in the window, or -1 when attempts are not counted.
type RejectedError struct {
	Remaining int
}

func (e *RejectedError) Error() string { return ErrRejected.Error() }

func (e *RejectedError) Unwrap() error { return ErrRejected }

type LoginService struct {
	gate    *auth.Gate
	limiter ratelimit.LoginLimiter
	tokens  *auth.TokenIssuer
}

func NewLoginService(gate *auth.Gate, limiter ratelimit.LoginLimiter, tokens *auth.TokenIssuer) *LoginService {
	if limiter == nil {
		limiter = ratelimit.Disabled{}
	}
	return &LoginService{gate: gate, limiter: limiter, tokens: tokens}
}

// Login verifies the credentials for a session on the login view. Attempts
// are counted against client, the caller's network address. On success the
// session moves to the dashboard and receives a token bound to it. A failed
// attempt leaves the session on the login view.
func (s *LoginService) Login(ctx context.Context, target LoginTarget, client string, req models.LoginRequest) (models.LoginResponse, error) {
	if target.View() != models.ViewAdminLogin {
		return models.LoginResponse{}, router.ErrInvalidTransition
	}

	decision, err := s.limiter.Check(ctx, client)
	if err != nil {
		// A limiter outage allows the attempt.
		slog.Warn("Login limiter unavailable, allowing attempt", slog.String("error", err.Error()))
		decision = ratelimit.Decision{Allowed: true, Remaining: -1}
	} else if !decision.Allowed {
		return models.LoginResponse{}, &RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	if !s.gate.Authenticate(req.Username, req.Password) {
		return models.LoginResponse{}, &RejectedError{Remaining: decision.Remaining}
	}

	token, err := s.tokens.Issue(target.ID(), req.Username)
	if err != nil {
		return models.LoginResponse{}, err
	}

	if err := target.LoginSucceeded(); err != nil {
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(s.tokens.Expiry().Seconds()),
		View:      models.ViewAdminDashboard,
	}, nil
}
