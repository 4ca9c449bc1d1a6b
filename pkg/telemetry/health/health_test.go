package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLivenessAlwaysOK(t *testing.T) {
	c := New(time.Second)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var status Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q, want ok", status.Status)
	}
}

func TestReadinessNoChecks(t *testing.T) {
	c := New(time.Second)
	status := c.Readiness(context.Background())
	if status.Status != "ready" {
		t.Errorf("status = %q, want ready with no checks", status.Status)
	}
}

func TestReadinessFailingCheck(t *testing.T) {
	c := New(time.Second)
	c.Register("history", func(context.Context) error { return nil })
	c.Register("tracer", func(context.Context) error { return errors.New("collector unreachable") })

	req := httptest.NewRequest("GET", "/ready", nil)
	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, req)

	if rec.Code != 503 {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var status Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if status.Checks["history"].Status != "ok" {
		t.Errorf("history check = %+v, want ok", status.Checks["history"])
	}
	if status.Checks["tracer"].Message != "collector unreachable" {
		t.Errorf("tracer message = %q", status.Checks["tracer"].Message)
	}
}

func TestHandlersRejectPost(t *testing.T) {
	c := New(time.Second)
	req := httptest.NewRequest("POST", "/health", nil)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, req)
	if rec.Code != 405 {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
