package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"benlabs/caliper/pkg/server/respond"
)

// Recovery converts handler panics into a 500 response. The panic and
// stack trace go to the log; the client sees only a generic message.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic in handler",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					respond.Error(w, r, http.StatusInternalServerError,
						respond.ErrorTypeServerError,
						"an internal error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
