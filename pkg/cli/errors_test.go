package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("server.listen_address", "cannot be empty")
	want := "config error in server.listen_address: cannot be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("lint", cause)
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
	if err.Error() != "command lint failed: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"violations", &ViolationsError{Count: 3}, ExitViolations},
		{"wrapped violations", fmt.Errorf("lint: %w", &ViolationsError{Count: 1}), ExitViolations},
		{"tool failure", errors.New("io error"), ExitFailure},
		{"command error", NewCommandError("serve", errors.New("bind failed")), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestViolationsErrorMessage(t *testing.T) {
	one := &ViolationsError{Count: 1}
	if one.Error() != "1 violation at or above the failure threshold" {
		t.Errorf("singular message = %q", one.Error())
	}
	many := &ViolationsError{Count: 4}
	if many.Error() != "4 violations at or above the failure threshold" {
		t.Errorf("plural message = %q", many.Error())
	}
}
