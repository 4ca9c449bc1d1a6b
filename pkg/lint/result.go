package lint

import (
	"encoding/json"
	"time"
)

// Result aggregates the outcome of a lint run.
type Result struct {
	// Violations are the surviving findings, sorted by location.
	Violations []Violation `json:"violations"`

	// FilesChecked is the number of files parsed and linted.
	FilesChecked int `json:"files_checked"`

	// Suppressed counts violations removed by ignore directives.
	Suppressed int `json:"suppressed"`

	// Errors, Warnings and Infos count violations by severity.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	// Duration is the wall time of the run. It serializes as integer
	// milliseconds under the duration_ms key.
	Duration time.Duration `json:"-"`
}

// MarshalJSON emits Duration as integer milliseconds so the
// duration_ms field carries the unit its name promises.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		*plain
		DurationMS int64 `json:"duration_ms"`
	}{(*plain)(r), r.Duration.Milliseconds()})
}

// UnmarshalJSON reads duration_ms back into Duration.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	aux := struct {
		*plain
		DurationMS int64 `json:"duration_ms"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Duration = time.Duration(aux.DurationMS) * time.Millisecond
	return nil
}

// Count returns the number of violations at the given severity.
func (r *Result) Count(s Severity) int {
	switch s {
	case SeverityError:
		return r.Errors
	case SeverityWarning:
		return r.Warnings
	case SeverityInfo:
		return r.Infos
	default:
		return 0
	}
}

// Failed reports whether the run contains violations at or above the
// threshold severity.
func (r *Result) Failed(threshold Severity) bool {
	switch threshold {
	case SeverityInfo:
		return r.Errors+r.Warnings+r.Infos > 0
	case SeverityWarning:
		return r.Errors+r.Warnings > 0
	default:
		return r.Errors > 0
	}
}

// tally recomputes the per-severity counters from the violation list.
func (r *Result) tally() {
	r.Errors, r.Warnings, r.Infos = 0, 0, 0
	for i := range r.Violations {
		switch r.Violations[i].Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		case SeverityInfo:
			r.Infos++
		}
	}
}
