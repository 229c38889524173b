package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/{domain}/query", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/{entity}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func serve(r http.Handler, method, path string) {
	req := httptest.NewRequest(method, path, http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newTestRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/{domain}/query", "200"))

	serve(r, "POST", "/offices/query")
	serve(r, "POST", "/courses/query")

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/{domain}/query", "200"))
	if after-before != 2 {
		t.Errorf("expected 2 requests under one pattern, got %v", after-before)
	}
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	r := newTestRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/{entity}/{id}", "404"))

	serve(r, "GET", "/api/offices/7")

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/{entity}/{id}", "404"))
	if after-before != 1 {
		t.Errorf("expected one 404, got %v", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_SkipsProbes(t *testing.T) {
	r := newTestRouter()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/health", "200"))

	serve(r, "GET", "/health")

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/health", "200")); got != before {
		t.Errorf("health probe should not be counted, got %v", got)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := newTestRouter()
	serve(r, "POST", "/offices/query")

	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v", got)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
