package ops

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
)

func testRouter(t *testing.T, state StateFunc) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(logger.New(logger.Options{Output: io.Discard}), reg, state), reg
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := testRouter(t, func() State { return State{} })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRouter_State(t *testing.T) {
	router, _ := testRouter(t, func() State {
		return State{
			CatalogLoaded: true,
			CatalogSize:   12,
			Stage:         "option_select",
			Cart:          CartState{Lines: 2, ItemCount: 3, Total: "19.00"},
		}
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var state State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.CatalogLoaded || state.CatalogSize != 12 || state.Stage != "option_select" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.Cart.Total != "19.00" {
		t.Fatalf("unexpected cart state: %+v", state.Cart)
	}
}

func TestRouter_StateUnavailable(t *testing.T) {
	router, _ := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRouter_MetricsExposition(t *testing.T) {
	router, reg := testRouter(t, func() State { return State{} })
	m := metrics.NewStorefrontMetrics(reg)
	m.IncCartMutation("add")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `cart_mutations_total{op="add"} 1`) {
		t.Fatalf("expected cart mutation counter in exposition, got:\n%s", rec.Body.String())
	}
}
