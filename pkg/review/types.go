package review

import (
	"time"

	"benlabs/caliper/pkg/lint"
)

// Comment is one review remark tied to a changed line.
type Comment struct {
	// File is the repository-relative path.
	File string `json:"file"`

	// Line is the line number in the new version of the file.
	Line int `json:"line"`

	// Severity is "info", "warning" or "error".
	Severity string `json:"severity"`

	// Message explains the problem.
	Message string `json:"message"`

	// Suggestion optionally proposes a fix.
	Suggestion string `json:"suggestion,omitempty"`
}

// Result is the outcome of a review run.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// Commit is the reviewed HEAD commit.
	Commit string `json:"commit"`

	// BaseRef is the ref the diff was taken against.
	BaseRef string `json:"base_ref"`

	// Model is the model that produced the comments. Empty in
	// lint-only runs.
	Model string `json:"model,omitempty"`

	// Summary is the model's overall assessment.
	Summary string `json:"summary,omitempty"`

	// Comments are the accepted review comments.
	Comments []Comment `json:"comments"`

	// Lint is the lint result for the changed files.
	Lint *lint.Result `json:"lint,omitempty"`

	// LintOnly reports that the run degraded to lint-only.
	LintOnly bool `json:"lint_only"`

	// InputTokens and OutputTokens count API usage.
	InputTokens  int64 `json:"input_tokens,omitempty"`
	OutputTokens int64 `json:"output_tokens,omitempty"`

	// Duration is the run wall time.
	Duration time.Duration `json:"duration_ms"`
}
