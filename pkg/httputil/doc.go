// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding, and the server's middleware chain (request
// logging, panic recovery, CORS, and Prometheus instrumentation).
package httputil
