// Package observability provides Prometheus metrics and health probe
// endpoints for the host process.
//
// # Metrics
//
// HTTP request counters and latency histograms plus gauges describing
// the startup plugin load phase (plugins loaded, plugins failed), all
// registered against a caller-supplied Prometheus registry and served on
// the health port.
//
// # Health Probes
//
// /healthz is a plain liveness probe. /readyz reports the plugin load
// outcome: plugin failures degrade the status but never make the process
// unready, since the server serves its built-in routes regardless.
package observability
