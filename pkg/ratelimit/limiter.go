package ratelimit

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Rejection reasons reported in Decision.Reason and on metrics labels.
const (
	ReasonRate     = "rate"
	ReasonDailyCap = "daily_cap"
)

// Config contains configuration for the limiter.
type Config struct {
	// RequestsPerMinute is the sustained per-client rate.
	RequestsPerMinute int

	// Burst is the token bucket capacity.
	Burst int

	// DailyCap limits total requests per client per day. 0 disables
	// the cap.
	DailyCap int

	// ResetSchedule is the cron expression for the daily counter
	// reset. Empty means "0 0 * * *" (midnight UTC).
	ResetSchedule string

	// Logger receives reset events. Nil disables logging.
	Logger *slog.Logger
}

// Decision is the outcome of an Allow call.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Reason names the rejection cause when Allowed is false.
	Reason string

	// RetryAfter is how long the client should wait before retrying.
	RetryAfter time.Duration

	// Remaining is the client's remaining burst allowance.
	Remaining int
}

type clientState struct {
	bucket     *TokenBucket
	mu         sync.Mutex
	dailyCount int
	lastSeen   time.Time
}

// Limiter enforces per-client rate and daily limits.
type Limiter struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	clients map[string]*clientState

	cron    *cron.Cron
	entryID cron.EntryID
}

// NewLimiter creates a limiter and validates the reset schedule.
// Call Start to begin the daily reset job and Stop to end it.
func NewLimiter(cfg Config) (*Limiter, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("requests per minute must be positive")
	}
	if cfg.Burst <= 0 {
		return nil, fmt.Errorf("burst must be positive")
	}
	schedule := cfg.ResetSchedule
	if schedule == "" {
		schedule = "0 0 * * *"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	l := &Limiter{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[string]*clientState),
		cron:    cron.New(cron.WithLocation(time.UTC)),
	}

	id, err := l.cron.AddFunc(schedule, l.resetDaily)
	if err != nil {
		return nil, fmt.Errorf("invalid reset schedule %q: %w", schedule, err)
	}
	l.entryID = id
	return l, nil
}

// Start begins the daily reset scheduler.
func (l *Limiter) Start() {
	l.cron.Start()
}

// Stop halts the scheduler and waits for a running reset to finish.
func (l *Limiter) Stop() {
	ctx := l.cron.Stop()
	<-ctx.Done()
}

// Allow checks whether a request from client may proceed and consumes
// one unit of its allowance if so.
func (l *Limiter) Allow(client string) Decision {
	state := l.state(client)

	// The cap check and the increment must stay in one critical
	// section or concurrent requests can overshoot the cap.
	state.mu.Lock()
	defer state.mu.Unlock()

	state.lastSeen = time.Now()
	if l.cfg.DailyCap > 0 && state.dailyCount >= l.cfg.DailyCap {
		return Decision{
			Allowed:    false,
			Reason:     ReasonDailyCap,
			RetryAfter: untilNextUTCMidnight(time.Now()),
		}
	}

	if !state.bucket.Take() {
		return Decision{
			Allowed:    false,
			Reason:     ReasonRate,
			RetryAfter: state.bucket.RetryAfter(),
		}
	}
	state.dailyCount++

	return Decision{
		Allowed:   true,
		Remaining: state.bucket.Remaining(),
	}
}

func (l *Limiter) state(client string) *clientState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.clients[client]
	if !ok {
		state = &clientState{
			bucket: NewTokenBucket(l.cfg.Burst, float64(l.cfg.RequestsPerMinute)/60),
		}
		l.clients[client] = state
	}
	return state
}

// resetDaily zeroes every client's daily counter and drops clients not
// seen since the previous reset.
func (l *Limiter) resetDaily() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-24 * time.Hour)
	active := 0
	for client, state := range l.clients {
		state.mu.Lock()
		if state.lastSeen.Before(cutoff) {
			state.mu.Unlock()
			delete(l.clients, client)
			continue
		}
		state.dailyCount = 0
		state.mu.Unlock()
		active++
	}
	l.logger.Info("daily rate limit reset", "active_clients", active)
}

func untilNextUTCMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}
