package config

import (
	"time"

	"benlabs/caliper/pkg/lint"
)

// Config is the root Caliper configuration.
type Config struct {
	Lint      LintConfig      `yaml:"lint"`
	Review    ReviewConfig    `yaml:"review"`
	Server    ServerConfig    `yaml:"server"`
	History   HistoryConfig   `yaml:"history"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LintConfig configures the rule engine.
type LintConfig struct {
	// Rules maps rule names to their configuration.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Exclude lists path patterns to skip.
	Exclude []string `yaml:"exclude"`

	// Format is the default output format (text, json, github).
	Format string `yaml:"format"`

	// FailOn is the severity threshold that fails a run
	// (info, warning, error).
	FailOn string `yaml:"fail_on"`

	// Concurrency is the number of files linted in parallel.
	// 0 means one worker per CPU.
	Concurrency int `yaml:"concurrency"`

	// IncludeTests controls whether _test.go files are linted.
	IncludeTests *bool `yaml:"include_tests"`
}

// RuleConfig configures a single rule.
type RuleConfig struct {
	// Enabled turns the rule on or off. Nil means enabled.
	Enabled *bool `yaml:"enabled"`

	// Severity overrides the rule's default severity.
	Severity string `yaml:"severity"`

	// Settings holds rule-specific knobs.
	Settings map[string]any `yaml:"settings"`
}

// ReviewConfig configures the AI review helper.
type ReviewConfig struct {
	// Model is the Anthropic model identifier.
	Model string `yaml:"model"`

	// MaxTokens caps the response length.
	MaxTokens int `yaml:"max_tokens"`

	// MaxComments caps the number of review comments kept.
	MaxComments int `yaml:"max_comments"`

	// BaseRef is the default git ref reviewed against.
	BaseRef string `yaml:"base_ref"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never appears in configuration files.
	APIKeyEnv string `yaml:"api_key_env"`

	// Timeout bounds a single review request.
	Timeout time.Duration `yaml:"timeout"`

	// MaxDiffBytes caps how much diff is sent for review.
	MaxDiffBytes int `yaml:"max_diff_bytes"`
}

// ServerConfig configures the demo web service.
type ServerConfig struct {
	// ListenAddress is the host:port to bind.
	ListenAddress string `yaml:"listen_address"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxRequestBytes caps request bodies on the lint endpoint.
	MaxRequestBytes int64 `yaml:"max_request_bytes"`

	TLS          TLSConfig          `yaml:"tls"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Oscilloscope OscilloscopeConfig `yaml:"oscilloscope"`
}

// TLSConfig configures TLS termination.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig configures cross-origin request handling.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// RateLimitConfig configures per-client request limiting.
type RateLimitConfig struct {
	// Enabled turns rate limiting on.
	Enabled bool `yaml:"enabled"`

	// RequestsPerMinute is the sustained per-client rate.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// Burst is the short-term burst allowance.
	Burst int `yaml:"burst"`

	// DailyCap limits total requests per client per day. 0 disables
	// the cap.
	DailyCap int `yaml:"daily_cap"`

	// DailyResetSchedule is the cron expression for resetting daily
	// counters (default midnight UTC).
	DailyResetSchedule string `yaml:"daily_reset_schedule"`
}

// OscilloscopeConfig configures the waveform streaming demo.
type OscilloscopeConfig struct {
	// SampleRate is samples per second generated.
	SampleRate int `yaml:"sample_rate"`

	// BatchSize is the number of samples per WebSocket frame.
	BatchSize int `yaml:"batch_size"`

	// MaxConnections caps concurrent streaming connections.
	MaxConnections int `yaml:"max_connections"`

	// PingInterval is the keepalive ping cadence.
	PingInterval time.Duration `yaml:"ping_interval"`
}

// HistoryConfig configures lint run persistence.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// TelemetryConfig configures logging, metrics and tracing.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is the output format (json, text).
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	Endpoint string `yaml:"endpoint"`

	// SampleRatio is the trace sampling ratio in [0, 1].
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LintOptions converts the lint section into engine options.
func (c *Config) LintOptions() (lint.Options, error) {
	opts := lint.DefaultOptions()

	if c.Lint.FailOn != "" {
		failOn, err := lint.ParseSeverity(c.Lint.FailOn)
		if err != nil {
			return opts, err
		}
		opts.FailOn = failOn
	}
	if c.Lint.Concurrency > 0 {
		opts.Concurrency = c.Lint.Concurrency
	}
	if c.Lint.IncludeTests != nil {
		opts.IncludeTests = *c.Lint.IncludeTests
	}
	opts.Exclude = c.Lint.Exclude

	for name, rc := range c.Lint.Rules {
		opt := lint.RuleOption{Settings: rc.Settings}
		if rc.Enabled != nil && !*rc.Enabled {
			opt.Disabled = true
		}
		if rc.Severity != "" {
			sev, err := lint.ParseSeverity(rc.Severity)
			if err != nil {
				return opts, err
			}
			opt.Severity = &sev
		}
		opts.Rules[name] = opt
	}

	return opts, nil
}
