package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/server/respond"
)

// LintRequest is the body of POST /api/lint.
type LintRequest struct {
	// Filename names the snippet; it shows up in violation paths.
	// Defaults to "source.go".
	Filename string `json:"filename"`

	// Source is the Go source to lint.
	Source string `json:"source"`
}

// LintHandler lints a posted source snippet.
type LintHandler struct {
	runner   *lint.Runner
	maxBytes int64
}

// NewLintHandler creates the handler. maxBytes caps the request body.
func NewLintHandler(runner *lint.Runner, maxBytes int64) *LintHandler {
	return &LintHandler{runner: runner, maxBytes: maxBytes}
}

func (h *LintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, r, http.StatusMethodNotAllowed,
			respond.ErrorTypeInvalidRequest, "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	var req LintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, r, http.StatusRequestEntityTooLarge,
				respond.ErrorTypeRequestTooLarge, "request body too large")
			return
		}
		respond.Error(w, r, http.StatusBadRequest,
			respond.ErrorTypeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Source == "" {
		respond.Error(w, r, http.StatusBadRequest,
			respond.ErrorTypeInvalidRequest, "source cannot be empty")
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "source.go"
	}

	result, err := h.runner.LintSource(r.Context(), filename, []byte(req.Source))
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError,
			respond.ErrorTypeServerError, "lint run failed")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
