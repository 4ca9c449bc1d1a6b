package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/rules"
	"benlabs/caliper/pkg/review"
)

var reviewFlags struct {
	base        string
	model       string
	lintOnly    bool
	format      string
	maxComments int
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the current branch with lint findings and an AI pass",
	Long: `Review the diff between a base ref and HEAD.

Changed Go files are linted, then the sanitized diff and lint findings
are sent to the Anthropic API for a review pass. Model comments are
only kept when they land on lines the diff actually added. When no API
key is available the command degrades to lint findings alone.

The API key is read from the environment variable named by
review.api_key_env (default ANTHROPIC_API_KEY); it never appears in
configuration files.

Examples:
  # Review against main, markdown to stdout
  caliper review --base main

  # Machine-readable output for CI
  caliper review --format json

  # Skip the model pass entirely
  caliper review --lint-only`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVar(&reviewFlags.base, "base", "", "git ref to review against (default from config)")
	reviewCmd.Flags().StringVar(&reviewFlags.model, "model", "", "override the Anthropic model")
	reviewCmd.Flags().BoolVar(&reviewFlags.lintOnly, "lint-only", false, "skip the AI pass, report lint findings only")
	reviewCmd.Flags().StringVar(&reviewFlags.format, "format", "markdown", "output format: markdown, json")
	reviewCmd.Flags().IntVar(&reviewFlags.maxComments, "max-comments", 0, "override the comment cap")
}

func runReview(cmd *cobra.Command, args []string) error {
	if reviewFlags.format != "markdown" && reviewFlags.format != "json" {
		return cli.NewConfigError("format", fmt.Sprintf("unknown output format %q", reviewFlags.format))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reviewFlags.base != "" {
		cfg.Review.BaseRef = reviewFlags.base
	}
	if reviewFlags.model != "" {
		cfg.Review.Model = reviewFlags.model
	}
	if reviewFlags.maxComments > 0 {
		cfg.Review.MaxComments = reviewFlags.maxComments
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	opts, err := cfg.LintOptions()
	if err != nil {
		return cli.NewConfigError("lint", err.Error())
	}

	runner := lint.NewRunner(rules.DefaultRegistry(), opts, lint.WithLogger(logger))
	reviewer := review.NewReviewer(review.Config{
		Model:        cfg.Review.Model,
		MaxTokens:    cfg.Review.MaxTokens,
		MaxComments:  cfg.Review.MaxComments,
		BaseRef:      cfg.Review.BaseRef,
		APIKeyEnv:    cfg.Review.APIKeyEnv,
		Timeout:      cfg.Review.Timeout,
		MaxDiffBytes: cfg.Review.MaxDiffBytes,
		LintOnly:     reviewFlags.lintOnly,
	}, runner, review.WithLogger(logger))

	ctx := cli.SetupSignalHandler()
	result, err := reviewer.Run(ctx, ".")
	if err != nil {
		return cli.NewCommandError("review", err)
	}

	switch reviewFlags.format {
	case "json":
		err = review.RenderJSON(os.Stdout, result)
	default:
		err = review.RenderMarkdown(os.Stdout, result)
	}
	if err != nil {
		return cli.NewCommandError("review", err)
	}

	if result.Lint != nil && result.Lint.Failed(opts.FailOn) {
		return &cli.ViolationsError{Count: len(result.Lint.Violations)}
	}
	return nil
}
