// Package handlers implements the demo service's HTTP endpoints:
// lint-over-HTTP, the rule catalog, and the oscilloscope WebSocket
// stream. Health and metrics endpoints come from pkg/telemetry.
package handlers
