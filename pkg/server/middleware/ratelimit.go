package middleware

import (
	"fmt"
	"net"
	"net/http"

	"benlabs/caliper/pkg/ratelimit"
	"benlabs/caliper/pkg/server/respond"
	"benlabs/caliper/pkg/telemetry/metrics"
)

// RateLimit rejects requests over the per-client limits with 429.
// Clients are keyed by remote IP. Probe and scrape endpoints are
// exempt so monitoring never competes with traffic.
func RateLimit(limiter *ratelimit.Limiter, collector *metrics.Collector) func(http.Handler) http.Handler {
	exempt := map[string]bool{
		"/health":  true,
		"/ready":   true,
		"/metrics": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || exempt[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			decision := limiter.Allow(clientKey(r))
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if collector != nil {
				collector.RecordRateLimitRejection(decision.Reason)
			}

			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", decision.RetryAfter.Seconds()))
			message := "rate limit exceeded, slow down"
			if decision.Reason == ratelimit.ReasonDailyCap {
				message = "daily request cap reached"
			}
			respond.Error(w, r, http.StatusTooManyRequests,
				respond.ErrorTypeRateLimitExceeded, message)
		})
	}
}

// clientKey extracts the client IP, ignoring the port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
