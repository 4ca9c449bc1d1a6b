package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/lint/history"
)

var historyFlags struct {
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lint runs",
	Long: `Show recent lint runs from the history database.

Runs are recorded by "caliper lint" when history is enabled in
configuration (history.enabled: true). The database path defaults to
.caliper/history.db.

Examples:
  # Last 20 runs
  caliper history

  # Last 5 runs as JSON
  caliper history --limit 5 --format json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum runs to show")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if historyFlags.limit <= 0 {
		return cli.NewConfigError("limit", "must be positive")
	}

	if _, err := os.Stat(cfg.History.DBPath); err != nil {
		return cli.NewCommandError("history",
			fmt.Errorf("no history database at %s (enable history and run caliper lint first)", cfg.History.DBPath))
	}
	store, err := history.NewSQLiteStore(cfg.History.DBPath)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	switch historyFlags.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"runs": runs})

	case "text":
		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tCOMMIT\tFILES\tERRORS\tWARNINGS\tINFOS\tSUPPRESSED\tDURATION")
		for _, run := range runs {
			commit := run.Commit
			if len(commit) > 8 {
				commit = commit[:8]
			}
			if commit == "" {
				commit = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				run.Timestamp.Local().Format("2006-01-02 15:04:05"),
				commit,
				run.FilesChecked,
				run.Errors, run.Warnings, run.Infos,
				run.Suppressed,
				run.Duration.Round(time.Millisecond),
			)
		}
		return w.Flush()

	default:
		return cli.NewConfigError("format", fmt.Sprintf("unknown format %q", historyFlags.format))
	}
}
