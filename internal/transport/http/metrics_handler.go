package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler wraps the exporter's handler. A nil handler falls back to
// the default Prometheus registry.
func NewMetricsHandler(h http.Handler) *MetricsHandler {
	if h == nil {
		h = promhttp.Handler()
	}
	return &MetricsHandler{handler: h}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
