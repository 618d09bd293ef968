package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareRecordsPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Middleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("418", http.MethodGet, "GET /api/v1/products/{id}"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("418", http.MethodGet, "GET /api/v1/products/{id}"))
	assert.Equal(t, before+1, after)
	assert.Zero(t, testutil.ToFloat64(httpRequestsInFlight))
}

func TestObserveCollaborator(t *testing.T) {
	before := testutil.ToFloat64(collaboratorCalls.WithLabelValues("narrative", OutcomeFallback))

	ObserveCollaborator("narrative", OutcomeFallback)
	ObserveCollaborator("narrative", OutcomeFallback)

	assert.Equal(t, before+2, testutil.ToFloat64(collaboratorCalls.WithLabelValues("narrative", OutcomeFallback)))
}

func TestGauges(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(activeSessions))

	before := testutil.ToFloat64(ordersPlaced)
	OrderPlaced()
	assert.Equal(t, before+1, testutil.ToFloat64(ordersPlaced))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveCollaborator("chat", OutcomeSuccess)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "atelier_collaborator_calls_total"))
}
