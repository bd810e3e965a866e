package ops

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rnitealiii/EliteMart/pkg/logger"
)

// State is the read-only snapshot served on /state.
type State struct {
	CatalogLoaded bool      `json:"catalog_loaded"`
	CatalogSize   int       `json:"catalog_size"`
	Stage         string    `json:"stage"`
	Cart          CartState `json:"cart"`
}

// CartState summarizes the cart for the ops surface.
type CartState struct {
	Lines     int    `json:"lines"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// StateFunc supplies the current snapshot on each request.
type StateFunc func() State

// NewRouter builds the observability sidecar: health, metrics and a state
// snapshot. It is read-only; no order operation is reachable here.
func NewRouter(logg *logger.Logger, gatherer prometheus.Gatherer, state StateFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/state", func(w http.ResponseWriter, req *http.Request) {
		if state == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "state unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, state())
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
