// Package respond defines the JSON response helpers and the error
// shape shared by the demo service's handlers and middleware.
package respond

import (
	"encoding/json"
	"net/http"

	"benlabs/caliper/pkg/telemetry/logging"
)

// ErrorResponse is the JSON error shape every endpoint returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error fields.
type ErrorDetail struct {
	// Type categorizes the error.
	Type string `json:"type"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// RequestID correlates the error with logs.
	RequestID string `json:"request_id,omitempty"`
}

// Error type constants.
const (
	ErrorTypeInvalidRequest    = "invalid_request_error"
	ErrorTypeNotFound          = "not_found"
	ErrorTypeRateLimitExceeded = "rate_limit_exceeded"
	ErrorTypeRequestTooLarge   = "request_too_large"
	ErrorTypeServerError       = "server_error"
)

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error shape, tagging it with the request
// ID from the context.
func Error(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	JSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Type:      errType,
			Message:   message,
			RequestID: logging.GetRequestID(r.Context()),
		},
	})
}
