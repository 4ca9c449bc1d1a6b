package lint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// SyntaxRule is the synthetic rule name attached to parse failures.
const SyntaxRule = "syntax"

// Recorder receives lint metrics. It is implemented by the telemetry
// layer; a nil Recorder disables recording.
type Recorder interface {
	RecordLintRun(duration time.Duration, files, errors, warnings, infos int)
	RecordViolation(rule, severity string)
}

// Runner lints files with the rules of a Registry, applying the
// configuration in Options.
//
// A Runner is safe for concurrent use.
type Runner struct {
	registry *Registry
	opts     Options
	logger   *slog.Logger
	recorder Recorder
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *Registry, opts Options, runnerOpts ...RunnerOption) *Runner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	r := &Runner{
		registry: registry,
		opts:     opts,
		logger:   slog.Default(),
	}
	for _, opt := range runnerOpts {
		opt(r)
	}
	return r
}

// Registry returns the runner's rule registry.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// LintPaths lints the given paths. Directories are walked recursively
// (vendor, testdata and hidden directories are skipped); files are
// linted as-is. Path exclusion patterns from Options apply to both.
func (r *Runner) LintPaths(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()

	ctx, span := otel.Tracer("caliper/lint").Start(ctx, "lint.run")
	defer span.End()

	files, err := r.collectFiles(paths)
	if err != nil {
		return nil, err
	}

	result := &Result{Violations: make([]Violation, 0)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	work := make(chan string)
	for i := 0; i < r.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				if ctx.Err() != nil {
					return
				}
				violations, suppressed := r.lintOne(path)
				mu.Lock()
				result.Violations = append(result.Violations, violations...)
				result.Suppressed += suppressed
				result.FilesChecked++
				mu.Unlock()
			}
		}()
	}

	for _, path := range files {
		select {
		case work <- path:
		case <-ctx.Done():
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortViolations(result.Violations)
	result.tally()
	result.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("lint.files", result.FilesChecked),
		attribute.Int("lint.errors", result.Errors),
		attribute.Int("lint.warnings", result.Warnings),
	)

	if r.recorder != nil {
		r.recorder.RecordLintRun(result.Duration, result.FilesChecked,
			result.Errors, result.Warnings, result.Infos)
		for i := range result.Violations {
			r.recorder.RecordViolation(result.Violations[i].Rule,
				result.Violations[i].Severity.String())
		}
	}

	r.logger.Debug("lint run completed",
		"files", result.FilesChecked,
		"errors", result.Errors,
		"warnings", result.Warnings,
		"suppressed", result.Suppressed,
		"duration", result.Duration,
	)

	return result, nil
}

// LintSource lints raw source under a synthetic path. Used by the
// lint API endpoint and by tests.
func (r *Runner) LintSource(ctx context.Context, path string, src []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	violations, suppressed := r.lintSource(path, src)
	sortViolations(violations)
	if violations == nil {
		violations = []Violation{}
	}

	result := &Result{
		Violations:   violations,
		FilesChecked: 1,
		Suppressed:   suppressed,
		Duration:     time.Since(start),
	}
	result.tally()
	return result, nil
}

// lintOne reads and lints a single file.
func (r *Runner) lintOne(path string) ([]Violation, int) {
	src, err := os.ReadFile(path)
	if err != nil {
		return []Violation{{
			Rule:     SyntaxRule,
			Category: CategoryStyle,
			Severity: SeverityError,
			File:     path,
			Line:     1,
			Message:  fmt.Sprintf("cannot read file: %v", err),
		}}, 0
	}
	return r.lintSource(path, src)
}

// lintSource parses src and dispatches the enabled rules. A parse
// failure produces a single syntax violation instead of aborting the
// run.
func (r *Runner) lintSource(path string, src []byte) ([]Violation, int) {
	if isGenerated(src) {
		return nil, 0
	}

	f, err := parseFile(path, src, r.opts.settingsMap())
	if err != nil {
		return []Violation{syntaxViolation(path, err)}, 0
	}

	if f.IsTest() && !r.opts.IncludeTests {
		return nil, 0
	}

	sup, directiveViolations := parseDirectives(f, r.registry.Has)

	var violations []Violation
	for _, rule := range r.registry.Rules() {
		if !r.opts.ruleEnabled(rule.Name()) {
			continue
		}
		severity := r.opts.effectiveSeverity(rule)
		for _, v := range rule.Check(f) {
			v.Severity = severity
			violations = append(violations, v)
		}
	}
	violations = append(violations, directiveViolations...)

	kept := violations[:0]
	suppressed := 0
	for _, v := range violations {
		if sup.suppressed(v.Rule, v.Line) {
			suppressed++
			continue
		}
		kept = append(kept, v)
	}
	return kept, suppressed
}

// collectFiles expands the given paths into the list of Go files to
// lint, applying exclusion patterns.
func (r *Runner) collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] && !r.opts.excluded(path) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		// Accept go-style "./..." spellings for directories.
		p = strings.TrimSuffix(p, "...")
		p = filepath.Clean(strings.TrimSuffix(p, string(filepath.Separator)))
		if p == "" {
			p = "."
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %q: %w", p, err)
		}

		if !info.IsDir() {
			if strings.HasSuffix(p, ".go") {
				add(p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir(d.Name(), path != p) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", p, err)
		}
	}

	return files, nil
}

// skipDir reports whether a directory should be skipped during the
// walk. The root of the walk is never skipped even when hidden.
func skipDir(name string, nested bool) bool {
	if !nested {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	switch name {
	case "vendor", "testdata", "node_modules":
		return true
	}
	return false
}

// syntaxViolation converts a parse error into a violation.
func syntaxViolation(path string, err error) Violation {
	v := Violation{
		Rule:     SyntaxRule,
		Category: CategoryStyle,
		Severity: SeverityError,
		File:     path,
		Line:     1,
		Message:  err.Error(),
	}
	// go/parser errors carry "file:line:col: message" positions; lift
	// the first one into the violation location.
	var line, col int
	var rest string
	if n, _ := fmt.Sscanf(err.Error(), path+":%d:%d: %s", &line, &col, &rest); n >= 2 {
		v.Line = line
		v.Column = col
	}
	return v
}
