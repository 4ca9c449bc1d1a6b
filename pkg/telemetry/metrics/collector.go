package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns recording on. A disabled collector is still safe
	// to call; every record becomes a no-op.
	Enabled bool

	// Namespace is the metric name prefix (default "caliper").
	Namespace string
}

// Collector owns the Prometheus registry and every metric Caliper
// records. It satisfies lint.Recorder.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	// Lint engine metrics
	lintRuns        prometheus.Counter
	lintDuration    prometheus.Histogram
	lintFiles       prometheus.Counter
	lintViolations  *prometheus.CounterVec
	lintRunSeverity *prometheus.GaugeVec

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// WebSocket metrics
	wsSessions prometheus.Gauge
	wsSamples  prometheus.Counter

	// Review metrics
	reviewRequests *prometheus.CounterVec
	reviewTokens   *prometheus.CounterVec

	// Rate limiter metrics
	rateLimitRejections *prometheus.CounterVec
}

// NewCollector creates a collector with a fresh registry and registers
// all metrics on it.
func NewCollector(cfg Config) *Collector {
	if cfg.Namespace == "" {
		cfg.Namespace = "caliper"
	}

	registry := prometheus.NewRegistry()
	ns := cfg.Namespace

	c := &Collector{
		config:   cfg,
		registry: registry,

		lintRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lint_runs_total",
			Help:      "Total number of lint runs executed",
		}),
		lintDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "lint_run_duration_seconds",
			Help:      "Duration of lint runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
		lintFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lint_files_checked_total",
			Help:      "Total number of files linted",
		}),
		lintViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lint_violations_total",
			Help:      "Total violations found by rule and severity",
		}, []string{"rule", "severity"}),
		lintRunSeverity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "lint_last_run_violations",
			Help:      "Violation counts of the most recent lint run by severity",
		}, []string{"severity"}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by route",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}, []string{"method", "route"}),

		wsSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "oscilloscope_sessions_active",
			Help:      "Currently active oscilloscope stream sessions",
		}),
		wsSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "oscilloscope_samples_total",
			Help:      "Total waveform samples streamed",
		}),

		reviewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "review_requests_total",
			Help:      "Total AI review API requests by outcome",
		}, []string{"status"}),
		reviewTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "review_tokens_total",
			Help:      "Total tokens consumed by AI review requests",
		}, []string{"direction"}),

		rateLimitRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter by reason",
		}, []string{"reason"}),
	}

	registry.MustRegister(
		c.lintRuns, c.lintDuration, c.lintFiles, c.lintViolations, c.lintRunSeverity,
		c.httpRequests, c.httpDuration,
		c.wsSessions, c.wsSamples,
		c.reviewRequests, c.reviewTokens,
		c.rateLimitRejections,
	)

	return c
}

// RecordLintRun records a completed lint run. Part of lint.Recorder.
func (c *Collector) RecordLintRun(duration time.Duration, files, errors, warnings, infos int) {
	if !c.config.Enabled {
		return
	}
	c.lintRuns.Inc()
	c.lintDuration.Observe(duration.Seconds())
	c.lintFiles.Add(float64(files))
	c.lintRunSeverity.WithLabelValues("error").Set(float64(errors))
	c.lintRunSeverity.WithLabelValues("warning").Set(float64(warnings))
	c.lintRunSeverity.WithLabelValues("info").Set(float64(infos))
}

// RecordViolation records a single violation. Part of lint.Recorder.
func (c *Collector) RecordViolation(rule, severity string) {
	if !c.config.Enabled {
		return
	}
	c.lintViolations.WithLabelValues(rule, severity).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// StreamSessionStarted increments the active session gauge.
func (c *Collector) StreamSessionStarted() {
	if !c.config.Enabled {
		return
	}
	c.wsSessions.Inc()
}

// StreamSessionEnded decrements the active session gauge.
func (c *Collector) StreamSessionEnded() {
	if !c.config.Enabled {
		return
	}
	c.wsSessions.Dec()
}

// RecordStreamedSamples adds to the streamed sample counter.
func (c *Collector) RecordStreamedSamples(n int) {
	if !c.config.Enabled {
		return
	}
	c.wsSamples.Add(float64(n))
}

// RecordReviewRequest records an AI review API call outcome.
func (c *Collector) RecordReviewRequest(status string, inputTokens, outputTokens int64) {
	if !c.config.Enabled {
		return
	}
	c.reviewRequests.WithLabelValues(status).Inc()
	c.reviewTokens.WithLabelValues("input").Add(float64(inputTokens))
	c.reviewTokens.WithLabelValues("output").Add(float64(outputTokens))
}

// RecordRateLimitRejection records a rate limiter rejection.
func (c *Collector) RecordRateLimitRejection(reason string) {
	if !c.config.Enabled {
		return
	}
	c.rateLimitRejections.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
