package handlers

import (
	"fmt"
	"net/http"

	"studentgigs/internal/http/metrics"
	"studentgigs/internal/http/response"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

// Metrics exposes the counters in Prometheus text format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	requests, errors := h.collector.Snapshot()
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "# TYPE studentgigs_http_requests_total counter\n")
	fmt.Fprintf(w, "studentgigs_http_requests_total %d\n", requests)
	fmt.Fprintf(w, "# TYPE studentgigs_http_errors_total counter\n")
	fmt.Fprintf(w, "studentgigs_http_errors_total %d\n", errors)
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
