package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "caliper",
	Short: "Caliper - design linter and AI review for Go",
	Long: `Caliper is a design linter and AI-assisted review tool for Go repositories.

It provides:
  - Design-level lint rules over go/ast (complexity, size, naming, literals)
  - Text, JSON and GitHub Actions output formats
  - AI-assisted code review of branch diffs via the Anthropic API
  - Run history in SQLite for tracking violation trends
  - A demo server with an HTTP lint API and a WebSocket oscilloscope stream

For more information, visit: https://github.com/benlabs/caliper`,
	Version: Version,
}

// Execute runs the root command and exits with the code mapped from
// the returned error (2 for lint violations, 1 for everything else).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default .caliper.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
