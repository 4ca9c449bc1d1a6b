package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/gitx"
	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/history"
	"benlabs/caliper/pkg/lint/report"
	"benlabs/caliper/pkg/lint/rules"
)

var lintFlags struct {
	format      string
	failOn      string
	watch       bool
	changedOnly bool
	base        string
	noHistory   bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check Go source against the design rule catalog",
	Long: `Check Go files and directories against the design rule catalog.

Directories are walked recursively; vendor, testdata and hidden
directories are skipped. Violations can be suppressed per line or per
file with //caliper:disable-line, //caliper:disable-next-line and
//caliper:disable-file directives.

Exit codes: 0 when clean, 2 when violations meet the fail-on
threshold, 1 on any other error.

Examples:
  # Lint the current module
  caliper lint ./...

  # Lint specific packages with JSON output
  caliper lint --format json ./pkg/server ./pkg/config

  # Fail CI on warnings, not just errors
  caliper lint --fail-on warning .

  # Only lint files changed since main
  caliper lint --changed-only --base main

  # Re-lint on every file change
  caliper lint --watch ./pkg`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "", "output format: text, json, github")
	lintCmd.Flags().StringVar(&lintFlags.failOn, "fail-on", "", "severity that fails the run: info, warning, error")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "watch paths and re-lint on changes")
	lintCmd.Flags().BoolVar(&lintFlags.changedOnly, "changed-only", false, "lint only Go files changed since --base")
	lintCmd.Flags().StringVar(&lintFlags.base, "base", "", "git ref for --changed-only (default from config)")
	lintCmd.Flags().BoolVar(&lintFlags.noHistory, "no-history", false, "skip recording this run in history")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if lintFlags.format != "" {
		cfg.Lint.Format = lintFlags.format
	}
	if lintFlags.failOn != "" {
		cfg.Lint.FailOn = lintFlags.failOn
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	opts, err := cfg.LintOptions()
	if err != nil {
		return cli.NewConfigError("lint", err.Error())
	}
	reporter, err := report.Get(cfg.Lint.Format)
	if err != nil {
		return cli.NewConfigError("lint.format", err.Error())
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var commit string
	if lintFlags.changedOnly {
		base := lintFlags.base
		if base == "" {
			base = cfg.Review.BaseRef
		}
		repo, err := gitx.Open(".")
		if err != nil {
			return cli.NewCommandError("lint", fmt.Errorf("--changed-only requires a git repository: %w", err))
		}
		commit, _ = repo.HeadCommit()
		changed, err := repo.ChangedGoFiles(base)
		if err != nil {
			return cli.NewCommandError("lint", fmt.Errorf("resolving changed files against %s: %w", base, err))
		}
		if len(changed) == 0 {
			fmt.Fprintf(os.Stderr, "no Go files changed since %s\n", base)
			return nil
		}
		paths = changed
	} else if repo, err := gitx.Open("."); err == nil {
		commit, _ = repo.HeadCommit()
	}

	runner := lint.NewRunner(rules.DefaultRegistry(), opts, lint.WithLogger(logger))

	var store history.Store
	if cfg.History.Enabled && !lintFlags.noHistory {
		if dir := filepath.Dir(cfg.History.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return cli.NewCommandError("lint", fmt.Errorf("creating history directory: %w", err))
			}
		}
		store, err = history.NewSQLiteStore(cfg.History.DBPath)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		defer store.Close()
	}

	ctx := cli.SetupSignalHandler()

	if lintFlags.watch {
		return watchLint(ctx, runner, reporter, store, commit, paths, opts.FailOn, logger)
	}

	result, err := runner.LintPaths(ctx, paths)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if err := reporter.Write(os.Stdout, result); err != nil {
		return cli.NewCommandError("lint", err)
	}
	recordRun(ctx, store, commit, result, logger)

	if result.Failed(opts.FailOn) {
		return &cli.ViolationsError{Count: len(result.Violations)}
	}
	return nil
}

// watchLint blocks re-linting on changes until interrupted. Watch mode
// never exits with the violations code; it reports and keeps going.
func watchLint(ctx context.Context, runner *lint.Runner, reporter report.Reporter, store history.Store, commit string, paths []string, failOn lint.Severity, logger *slog.Logger) error {
	watcher, err := lint.NewWatcher(runner, lint.WatcherConfig{Paths: paths})
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	err = watcher.Watch(ctx, func(result *lint.Result) {
		if err := reporter.Write(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "writing report: %v\n", err)
		}
		recordRun(ctx, store, commit, result, logger)
		if result.Failed(failOn) {
			fmt.Fprintf(os.Stderr, "%d violations\n", len(result.Violations))
		}
	})
	if err != nil && ctx.Err() == nil {
		return cli.NewCommandError("lint", err)
	}
	return nil
}

// recordRun persists a run summary when history is enabled.
func recordRun(ctx context.Context, store history.Store, commit string, result *lint.Result, logger *slog.Logger) {
	if store == nil {
		return
	}
	run := history.Run{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Commit:       commit,
		FilesChecked: result.FilesChecked,
		Errors:       result.Errors,
		Warnings:     result.Warnings,
		Infos:        result.Infos,
		Suppressed:   result.Suppressed,
		Duration:     result.Duration,
	}
	if err := store.Record(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "recording run history: %v\n", err)
		return
	}
	logger.Info("recorded lint run", "run_id", run.ID, "violations", run.Total())
}
