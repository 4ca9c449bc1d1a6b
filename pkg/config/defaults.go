package config

import "time"

// Default returns the built-in configuration. Every field the rest of
// the program reads has a usable value here.
func Default() *Config {
	return &Config{
		Lint: LintConfig{
			Rules:       map[string]RuleConfig{},
			Exclude:     []string{"vendor", "testdata", "node_modules"},
			Format:      "text",
			FailOn:      "error",
			Concurrency: 0,
		},
		Review: ReviewConfig{
			Model:        "claude-sonnet-4-5",
			MaxTokens:    4096,
			MaxComments:  20,
			BaseRef:      "origin/main",
			APIKeyEnv:    "ANTHROPIC_API_KEY",
			Timeout:      120 * time.Second,
			MaxDiffBytes: 256 * 1024,
		},
		Server: ServerConfig{
			ListenAddress:   "127.0.0.1:8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBytes: 1 << 20,
			CORS: CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"http://localhost:3000"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
				MaxAge:         300,
			},
			RateLimit: RateLimitConfig{
				Enabled:            true,
				RequestsPerMinute:  120,
				Burst:              20,
				DailyCap:           10000,
				DailyResetSchedule: "0 0 * * *",
			},
			Oscilloscope: OscilloscopeConfig{
				SampleRate:     1000,
				BatchSize:      50,
				MaxConnections: 32,
				PingInterval:   30 * time.Second,
			},
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  ".caliper/history.db",
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
			Metrics: MetricsConfig{
				Enabled:   true,
				Path:      "/metrics",
				Namespace: "caliper",
			},
			Tracing: TracingConfig{
				Enabled:     false,
				Endpoint:    "localhost:4317",
				SampleRatio: 0.1,
			},
		},
	}
}
