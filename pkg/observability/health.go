package observability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// PluginStats is the view of the plugin registry the health endpoints
// report on.
type PluginStats interface {
	ListPlugins() []string
	Count() int
	FailureCount() int
}

// HealthChecker serves liveness and readiness probes for the host process
type HealthChecker struct {
	plugins PluginStats
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(plugins PluginStats) *HealthChecker {
	return &HealthChecker{plugins: plugins}
}

// HealthStatus represents the reported health of the process
type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	PluginsLoaded  int       `json:"plugins_loaded"`
	PluginFailures int       `json:"plugin_failures,omitempty"`
	Plugins        []string  `json:"plugins,omitempty"`
}

// Liveness returns a simple liveness probe (always 200 while the server runs)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness reports the startup load phase outcome. Plugin failures never
// make the process unready, only degraded: the server serves its built-in
// routes regardless of how many plugins loaded.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:         StatusHealthy,
		Timestamp:      time.Now(),
		PluginsLoaded:  h.plugins.Count(),
		PluginFailures: h.plugins.FailureCount(),
		Plugins:        h.plugins.ListPlugins(),
	}
	if status.PluginFailures > 0 {
		status.Status = StatusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

// Handler returns the health server's mux with probe endpoints and,
// when a registry is given, the Prometheus metrics endpoint.
func (h *HealthChecker) Handler(registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Liveness)
	mux.HandleFunc("/readyz", h.Readiness)
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	return mux
}
