// Package history persists lint run summaries so violation trends can
// be inspected over time with "caliper history".
//
// Two backends are provided: a SQLite store for real use and an
// in-memory store for tests.
package history

import (
	"context"
	"time"
)

// Run is one recorded lint run.
type Run struct {
	// ID is the unique run identifier (UUID).
	ID string `json:"id"`

	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	// Commit is the git HEAD at the time of the run, when available.
	Commit string `json:"commit,omitempty"`

	// FilesChecked is the number of files linted.
	FilesChecked int `json:"files_checked"`

	// Errors, Warnings and Infos count violations by severity.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`

	// Suppressed counts directive-suppressed violations.
	Suppressed int `json:"suppressed"`

	// Duration is the run wall time.
	Duration time.Duration `json:"duration_ms"`
}

// Total returns the total violation count of the run.
func (r *Run) Total() int {
	return r.Errors + r.Warnings + r.Infos
}

// Store persists lint runs.
type Store interface {
	// Record saves a run.
	Record(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close() error
}
