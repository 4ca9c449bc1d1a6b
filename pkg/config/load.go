package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked for when no --config
// flag is given.
const DefaultPath = ".caliper.yaml"

// Load reads the YAML file at path, merges it over the built-in
// defaults, applies CALIPER_* environment overrides and validates the
// result. A missing file at DefaultPath is not an error; a missing
// file at an explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing configuration file %q: %w", path, err)
		}
		// File values win over defaults; zero values in the file
		// leave the default in place.
		if err := mergo.Merge(cfg, &fileCfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Running without a config file is fine.
	default:
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies CALIPER_SECTION_FIELD environment variable
// overrides. Environment variables always win over file values.
func applyEnvOverrides(cfg *Config) {
	// Lint overrides
	if val := os.Getenv("CALIPER_LINT_FORMAT"); val != "" {
		cfg.Lint.Format = val
	}
	if val := os.Getenv("CALIPER_LINT_FAIL_ON"); val != "" {
		cfg.Lint.FailOn = val
	}
	if val := os.Getenv("CALIPER_LINT_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Lint.Concurrency = i
		}
	}
	if val := os.Getenv("CALIPER_LINT_INCLUDE_TESTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Lint.IncludeTests = &b
		}
	}

	// Review overrides
	if val := os.Getenv("CALIPER_REVIEW_MODEL"); val != "" {
		cfg.Review.Model = val
	}
	if val := os.Getenv("CALIPER_REVIEW_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Review.MaxTokens = i
		}
	}
	if val := os.Getenv("CALIPER_REVIEW_BASE_REF"); val != "" {
		cfg.Review.BaseRef = val
	}
	if val := os.Getenv("CALIPER_REVIEW_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Review.Timeout = d
		}
	}

	// Server overrides
	if val := os.Getenv("CALIPER_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("CALIPER_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("CALIPER_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("CALIPER_SERVER_RATE_LIMIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.RateLimit.Enabled = b
		}
	}
	if val := os.Getenv("CALIPER_SERVER_RATE_LIMIT_RPM"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.RateLimit.RequestsPerMinute = i
		}
	}

	// History overrides
	if val := os.Getenv("CALIPER_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("CALIPER_HISTORY_DB_PATH"); val != "" {
		cfg.History.DBPath = val
	}

	// Telemetry overrides
	if val := os.Getenv("CALIPER_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CALIPER_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CALIPER_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("CALIPER_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}
