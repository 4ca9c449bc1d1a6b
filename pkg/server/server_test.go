package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"benlabs/caliper/pkg/config"
	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/rules"
	"benlabs/caliper/pkg/telemetry/health"
	"benlabs/caliper/pkg/telemetry/metrics"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default().Server
	cfg.RateLimit.Enabled = false

	registry := rules.DefaultRegistry()
	srv, err := New(cfg, Deps{
		Logger:   slog.New(slog.DiscardHandler),
		Metrics:  metrics.NewCollector(metrics.Config{Enabled: true}),
		Checker:  health.New(time.Second),
		Runner:   lint.NewRunner(registry, lint.DefaultOptions()),
		Registry: registry,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv
}

func TestRoutesHealth(t *testing.T) {
	srv := testServer(t)
	handler := srv.Routes()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Error("response missing X-Request-ID header")
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Error("response missing security headers")
	}
}

func TestRoutesMetrics(t *testing.T) {
	srv := testServer(t)
	handler := srv.Routes()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRoutesLintEndToEnd(t *testing.T) {
	srv := testServer(t)
	handler := srv.Routes()

	body := `{"filename": "demo.go", "source": "package demo\n\nimport \"fmt\"\n\nfunc F() { fmt.Println(1) }\n"}`
	req := httptest.NewRequest("POST", "/api/lint", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var result lint.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.FilesChecked != 1 {
		t.Errorf("FilesChecked = %d, want 1", result.FilesChecked)
	}
}

func TestRoutesUnknownPath(t *testing.T) {
	srv := testServer(t)
	handler := srv.Routes()

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNewRejectsBadRateLimit(t *testing.T) {
	cfg := config.Default().Server
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 0

	_, err := New(cfg, Deps{Checker: health.New(time.Second)})
	if err == nil {
		t.Fatal("expected error for invalid rate limit config")
	}
}
