package review

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/waigani/diffparser"
	"go.opentelemetry.io/otel"

	"benlabs/caliper/pkg/gitx"
	"benlabs/caliper/pkg/lint"
)

// Recorder receives review API usage numbers. Implemented by the
// metrics collector; a nil Recorder disables recording.
type Recorder interface {
	RecordReviewRequest(status string, inputTokens, outputTokens int64)
}

// Config contains configuration for a Reviewer.
type Config struct {
	// Model is the Anthropic model identifier.
	Model string

	// MaxTokens caps the response length.
	MaxTokens int

	// MaxComments caps how many comments are kept, highest severity
	// first.
	MaxComments int

	// BaseRef is the git ref reviewed against.
	BaseRef string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// Timeout bounds the API call.
	Timeout time.Duration

	// MaxDiffBytes caps how much diff is sent.
	MaxDiffBytes int

	// LintOnly forces the lint-only path even with a key present.
	LintOnly bool
}

// Reviewer orchestrates a review run.
type Reviewer struct {
	cfg      Config
	runner   *lint.Runner
	logger   *slog.Logger
	recorder Recorder
}

// Option customizes a Reviewer.
type Option func(*Reviewer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reviewer) { r.logger = logger }
}

// WithRecorder sets the usage recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Reviewer) { r.recorder = rec }
}

// NewReviewer creates a reviewer that lints changed files with runner.
func NewReviewer(cfg Config, runner *lint.Runner, opts ...Option) *Reviewer {
	r := &Reviewer{
		cfg:    cfg,
		runner: runner,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reviews the changes between the configured base ref and HEAD of
// the repository containing dir.
func (r *Reviewer) Run(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()

	ctx, span := otel.Tracer("caliper/review").Start(ctx, "review.run")
	defer span.End()

	repo, err := gitx.Open(dir)
	if err != nil {
		return nil, err
	}
	commit, err := repo.HeadCommit()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Commit:  commit,
		BaseRef: r.cfg.BaseRef,
	}
	log := r.logger.With("run_id", result.RunID, "base_ref", r.cfg.BaseRef)

	rawDiff, err := repo.Diff(r.cfg.BaseRef)
	if err != nil {
		return nil, err
	}
	if rawDiff == "" {
		log.Info("no changes against base ref")
		result.Duration = time.Since(start)
		return result, nil
	}

	changed, err := repo.ChangedGoFiles(r.cfg.BaseRef)
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		lintResult, err := r.runner.LintPaths(ctx, changed)
		if err != nil {
			return nil, fmt.Errorf("linting changed files: %w", err)
		}
		result.Lint = lintResult
	}

	apiKey := os.Getenv(r.cfg.APIKeyEnv)
	if apiKey == "" || r.cfg.LintOnly {
		if apiKey == "" && !r.cfg.LintOnly {
			log.Warn("API key not set, degrading to lint-only review", "env", r.cfg.APIKeyEnv)
		}
		result.LintOnly = true
		result.Duration = time.Since(start)
		return result, nil
	}

	parsed, err := diffparser.Parse(rawDiff)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	sanitized := Sanitize(rawDiff)
	if r.cfg.MaxDiffBytes > 0 && len(sanitized) > r.cfg.MaxDiffBytes {
		log.Warn("diff truncated for review",
			"size", len(sanitized), "limit", r.cfg.MaxDiffBytes)
		sanitized = sanitized[:r.cfg.MaxDiffBytes]
	}

	prompt := buildPrompt(parsed, sanitized, result.Lint)

	callCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	client := NewClient(apiKey, r.cfg.Model, r.cfg.MaxTokens)
	reply, err := client.complete(callCtx, prompt)
	if err != nil {
		r.record("error", 0, 0)
		return nil, err
	}
	r.record("success", reply.inputTokens, reply.outputTokens)

	resp, err := parseResponse(reply.text)
	if err != nil {
		return nil, err
	}

	result.Model = r.cfg.Model
	result.Summary = resp.Summary
	result.Comments = r.filterComments(resp.Comments, parsed, log)
	result.InputTokens = reply.inputTokens
	result.OutputTokens = reply.outputTokens
	result.Duration = time.Since(start)

	log.Info("review complete",
		"comments", len(result.Comments),
		"input_tokens", reply.inputTokens,
		"output_tokens", reply.outputTokens)
	return result, nil
}

// filterComments drops comments pointing at lines the diff never
// added and caps the count, keeping the most severe first.
func (r *Reviewer) filterComments(comments []Comment, diff *diffparser.Diff, log *slog.Logger) []Comment {
	valid := addedLines(diff)

	kept := comments[:0]
	for _, c := range comments {
		if c.File == "" || c.Message == "" {
			continue
		}
		if !valid[c.File][c.Line] {
			log.Debug("dropping comment outside the diff", "file", c.File, "line", c.Line)
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return severityRank(kept[i].Severity) > severityRank(kept[j].Severity)
	})
	if r.cfg.MaxComments > 0 && len(kept) > r.cfg.MaxComments {
		kept = kept[:r.cfg.MaxComments]
	}
	return kept
}

func (r *Reviewer) record(status string, in, out int64) {
	if r.recorder != nil {
		r.recorder.RecordReviewRequest(status, in, out)
	}
}

func severityRank(s string) int {
	switch s {
	case "error":
		return 2
	case "warning":
		return 1
	default:
		return 0
	}
}
