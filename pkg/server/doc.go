// Package server runs the demo web service: health probes, the
// Prometheus scrape endpoint, a lint-over-HTTP API, the rule catalog,
// and the oscilloscope WebSocket stream. Requests pass through a
// middleware chain handling recovery, request IDs, logging, metrics,
// CORS, security headers and rate limiting.
package server
