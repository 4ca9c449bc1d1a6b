package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, cfg Config) *Limiter {
	t.Helper()
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}
	l, err := NewLimiter(cfg)
	if err != nil {
		t.Fatalf("NewLimiter() error: %v", err)
	}
	return l
}

func TestNewLimiterValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero rpm", Config{Burst: 5}},
		{"zero burst", Config{RequestsPerMinute: 60}},
		{"bad schedule", Config{RequestsPerMinute: 60, Burst: 5, ResetSchedule: "not cron"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLimiter(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAllowWithinBurst(t *testing.T) {
	l := newTestLimiter(t, Config{Burst: 3})

	for i := 0; i < 3; i++ {
		d := l.Allow("10.0.0.1")
		if !d.Allowed {
			t.Fatalf("request %d rejected within burst: %+v", i, d)
		}
	}
}

func TestAllowRejectsPastBurst(t *testing.T) {
	// 1 rpm keeps the refill negligible during the test.
	l := newTestLimiter(t, Config{RequestsPerMinute: 1, Burst: 2})

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.1")
	d := l.Allow("10.0.0.1")

	if d.Allowed {
		t.Fatal("third request should exceed burst of 2")
	}
	if d.Reason != ReasonRate {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonRate)
	}
	if d.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", d.RetryAfter)
	}
}

func TestClientsAreIndependent(t *testing.T) {
	l := newTestLimiter(t, Config{RequestsPerMinute: 1, Burst: 1})

	if d := l.Allow("10.0.0.1"); !d.Allowed {
		t.Fatal("first client's first request rejected")
	}
	if d := l.Allow("10.0.0.1"); d.Allowed {
		t.Fatal("first client's second request should be rejected")
	}
	if d := l.Allow("10.0.0.2"); !d.Allowed {
		t.Fatal("second client should have its own bucket")
	}
}

func TestDailyCap(t *testing.T) {
	l := newTestLimiter(t, Config{RequestsPerMinute: 6000, Burst: 100, DailyCap: 3})

	for i := 0; i < 3; i++ {
		if d := l.Allow("10.0.0.1"); !d.Allowed {
			t.Fatalf("request %d rejected under the cap", i)
		}
	}
	d := l.Allow("10.0.0.1")
	if d.Allowed {
		t.Fatal("request past the daily cap should be rejected")
	}
	if d.Reason != ReasonDailyCap {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonDailyCap)
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 24*time.Hour {
		t.Errorf("RetryAfter = %v, want within a day", d.RetryAfter)
	}
}

func TestDailyCapConcurrent(t *testing.T) {
	l := newTestLimiter(t, Config{RequestsPerMinute: 6000, Burst: 100, DailyCap: 5})

	var wg sync.WaitGroup
	var allowed atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("10.0.0.1").Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 5 {
		t.Errorf("allowed = %d, want exactly the cap of 5", got)
	}
}

func TestResetDailyClearsCounts(t *testing.T) {
	l := newTestLimiter(t, Config{RequestsPerMinute: 6000, Burst: 100, DailyCap: 1})

	l.Allow("10.0.0.1")
	if d := l.Allow("10.0.0.1"); d.Allowed {
		t.Fatal("cap of 1 should reject the second request")
	}

	l.resetDaily()

	if d := l.Allow("10.0.0.1"); !d.Allowed {
		t.Fatal("reset should clear the daily count")
	}
}

func TestTokenBucketRefill(t *testing.T) {
	// 100 tokens/sec refills one token within 50ms.
	tb := NewTokenBucket(1, 100)

	if !tb.Take() {
		t.Fatal("full bucket should allow a take")
	}
	if tb.Take() {
		t.Fatal("empty bucket should reject")
	}

	time.Sleep(50 * time.Millisecond)
	if !tb.Take() {
		t.Fatal("bucket should have refilled")
	}
}
