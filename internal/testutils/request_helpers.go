package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/lumiere-stone/atelier/internal/api/middleware"
	"github.com/lumiere-stone/atelier/internal/session"
)

// CreateTestRequestWithSession builds a request as it looks after the
// logging and session middleware ran.
func CreateTestRequestWithSession(method, target string, body io.Reader, st *session.State, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutSession(method, target, body, pathParams)
	req.Header.Set(middleware.SessionHeader, st.ID())

	return req.WithContext(middleware.WithSession(req.Context(), st))
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

// AdminSession returns a session already on the admin dashboard.
func AdminSession(reg *session.Registry) *session.State {
	st := reg.Create("#admin")
	if err := st.LoginSucceeded(); err != nil {
		panic(err)
	}
	return st
}
