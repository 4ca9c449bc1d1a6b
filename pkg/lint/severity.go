package lint

import (
	"encoding/json"
	"fmt"
)

// Severity represents how serious a violation is. Higher values are
// more severe; the ordering is used by Result.Failed to decide whether
// a run should fail the build.
type Severity int

const (
	// SeverityInfo marks informational findings that never fail a run.
	SeverityInfo Severity = iota

	// SeverityWarning marks findings that should be addressed but do
	// not fail a run unless the failure threshold is lowered.
	SeverityWarning

	// SeverityError marks findings that fail the run.
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name. It accepts the common aliases
// emitted by other tools ("warn", "err", "note").
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info", "note", "hint":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error", "err":
		return SeverityError, nil
	default:
		return SeverityWarning, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its string name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML decodes a severity from its string name so severities
// can be written directly in configuration files.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
