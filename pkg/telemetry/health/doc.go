// Package health implements the liveness and readiness probes served
// by the demo service. Components register a CheckFunc; readiness
// aggregates them and reports 503 when any check fails.
package health
