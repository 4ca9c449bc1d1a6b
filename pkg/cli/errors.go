package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the caliper command.
const (
	// ExitOK means the command succeeded and, for lint, no violation
	// reached the failure threshold.
	ExitOK = 0

	// ExitFailure means the tool itself failed (bad config, IO error,
	// API error).
	ExitFailure = 1

	// ExitViolations means the lint run completed but found
	// violations at or above the failure threshold.
	ExitViolations = 2
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ViolationsError signals that a lint run found violations at or above
// the configured threshold. It carries no cause; the report has
// already been written.
type ViolationsError struct {
	Count int
}

func (e *ViolationsError) Error() string {
	if e.Count == 1 {
		return "1 violation at or above the failure threshold"
	}
	return fmt.Sprintf("%d violations at or above the failure threshold", e.Count)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *ViolationsError
	if errors.As(err, &ve) {
		return ExitViolations
	}
	return ExitFailure
}
