package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"

	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/report"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g. "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a
// ValidationError listing every problem found, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateLint(&cfg.Lint)...)
	errs = append(errs, validateReview(&cfg.Review)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateLint(c *LintConfig) []FieldError {
	var errs []FieldError

	if c.Format != "" {
		if _, err := report.Get(c.Format); err != nil {
			errs = append(errs, FieldError{
				Field:   "lint.format",
				Message: fmt.Sprintf("unknown format %q (valid: %s)", c.Format, strings.Join(report.Formats(), ", ")),
			})
		}
	}
	if c.FailOn != "" {
		if _, err := lint.ParseSeverity(c.FailOn); err != nil {
			errs = append(errs, FieldError{
				Field:   "lint.fail_on",
				Message: fmt.Sprintf("unknown severity %q (valid: info, warning, error)", c.FailOn),
			})
		}
	}
	if c.Concurrency < 0 {
		errs = append(errs, FieldError{
			Field:   "lint.concurrency",
			Message: "must be zero or positive",
		})
	}
	for name, rc := range c.Rules {
		if rc.Severity == "" {
			continue
		}
		if _, err := lint.ParseSeverity(rc.Severity); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("lint.rules.%s.severity", name),
				Message: fmt.Sprintf("unknown severity %q", rc.Severity),
			})
		}
	}
	return errs
}

func validateReview(c *ReviewConfig) []FieldError {
	var errs []FieldError

	if c.Model == "" {
		errs = append(errs, FieldError{Field: "review.model", Message: "cannot be empty"})
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, FieldError{Field: "review.max_tokens", Message: "must be positive"})
	}
	if c.MaxComments <= 0 {
		errs = append(errs, FieldError{Field: "review.max_comments", Message: "must be positive"})
	}
	if c.APIKeyEnv == "" {
		errs = append(errs, FieldError{Field: "review.api_key_env", Message: "cannot be empty"})
	}
	if c.Timeout <= 0 {
		errs = append(errs, FieldError{Field: "review.timeout", Message: "must be positive"})
	}
	if c.MaxDiffBytes <= 0 {
		errs = append(errs, FieldError{Field: "review.max_diff_bytes", Message: "must be positive"})
	}
	return errs
}

func validateServer(c *ServerConfig) []FieldError {
	var errs []FieldError

	if c.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "cannot be empty"})
	} else if _, _, err := net.SplitHostPort(c.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid address %q: must be host:port", c.ListenAddress),
		})
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must be positive"})
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must be positive"})
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must be positive"})
	}
	if c.MaxRequestBytes <= 0 {
		errs = append(errs, FieldError{Field: "server.max_request_bytes", Message: "must be positive"})
	}

	if c.TLS.Enabled {
		if c.TLS.CertFile == "" {
			errs = append(errs, FieldError{Field: "server.tls.cert_file", Message: "required when TLS is enabled"})
		}
		if c.TLS.KeyFile == "" {
			errs = append(errs, FieldError{Field: "server.tls.key_file", Message: "required when TLS is enabled"})
		}
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			errs = append(errs, FieldError{
				Field:   "server.rate_limit.requests_per_minute",
				Message: "must be positive when rate limiting is enabled",
			})
		}
		if c.RateLimit.Burst <= 0 {
			errs = append(errs, FieldError{
				Field:   "server.rate_limit.burst",
				Message: "must be positive when rate limiting is enabled",
			})
		}
		if c.RateLimit.DailyCap < 0 {
			errs = append(errs, FieldError{
				Field:   "server.rate_limit.daily_cap",
				Message: "must be zero or positive",
			})
		}
		if c.RateLimit.DailyResetSchedule != "" {
			if _, err := cron.ParseStandard(c.RateLimit.DailyResetSchedule); err != nil {
				errs = append(errs, FieldError{
					Field:   "server.rate_limit.daily_reset_schedule",
					Message: fmt.Sprintf("invalid cron expression: %v", err),
				})
			}
		}
	}

	if c.Oscilloscope.SampleRate <= 0 {
		errs = append(errs, FieldError{Field: "server.oscilloscope.sample_rate", Message: "must be positive"})
	}
	if c.Oscilloscope.BatchSize <= 0 {
		errs = append(errs, FieldError{Field: "server.oscilloscope.batch_size", Message: "must be positive"})
	}
	if c.Oscilloscope.MaxConnections <= 0 {
		errs = append(errs, FieldError{Field: "server.oscilloscope.max_connections", Message: "must be positive"})
	}
	return errs
}

func validateHistory(c *HistoryConfig) []FieldError {
	var errs []FieldError
	if c.Enabled && c.DBPath == "" {
		errs = append(errs, FieldError{Field: "history.db_path", Message: "required when history is enabled"})
	}
	return errs
}

func validateTelemetry(c *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (valid: debug, info, warn, error)", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (valid: json, text)", c.Logging.Format),
		})
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "required when tracing is enabled",
		})
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "must be between 0 and 1",
		})
	}
	return errs
}
