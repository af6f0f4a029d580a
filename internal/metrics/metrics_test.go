package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	require.NotPanics(t, func() {
		Init("v1.0.0", "abc123", "2026-01-30")
		Init("v1.0.1", "def456", "2026-02-01")
	})

	assert.Equal(t, 1, testutil.CollectAndCount(AppInfo))
	assert.InDelta(t, 1.0, testutil.ToFloat64(AppInfo.WithLabelValues("v1.0.1", "def456", "2026-02-01")), 0)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(200))
	assert.Equal(t, "2xx", StatusClass(204))
	assert.Equal(t, "4xx", StatusClass(404))
	assert.Equal(t, "5xx", StatusClass(503))
	assert.Equal(t, "none", StatusClass(0))
}

func TestObserveClientRequest(t *testing.T) {
	before := testutil.ToFloat64(ClientRequestsTotal.WithLabelValues("GET", "4xx", OutcomeHTTPError))

	ObserveClientRequest("GET", 404, OutcomeHTTPError, 0.02)

	after := testutil.ToFloat64(ClientRequestsTotal.WithLabelValues("GET", "4xx", OutcomeHTTPError))
	assert.InDelta(t, before+1, after, 0)
}

func TestHTTPMiddleware_UsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(HTTPMiddleware)
	router.HandleFunc("/api/v1/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/teams/{id}", "418"))
	assert.InDelta(t, 1.0, got, 0)
}
