package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/lint/rules"
)

var rulesFlags struct {
	format string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the design rule catalog",
	Long: `List every registered design rule with its category, default
severity and description.

Rule names are the identifiers used in .caliper.yaml and in
//caliper:disable directives.

Examples:
  # Human-readable table
  caliper rules

  # JSON for tooling
  caliper rules --format json`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesFlags.format, "format", "text", "output format: text, json")
}

func runRules(cmd *cobra.Command, args []string) error {
	catalog := rules.DefaultRegistry().Rules()

	switch rulesFlags.format {
	case "json":
		type ruleInfo struct {
			Name        string `json:"name"`
			Category    string `json:"category"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
		}
		infos := make([]ruleInfo, 0, len(catalog))
		for _, rule := range catalog {
			infos = append(infos, ruleInfo{
				Name:        rule.Name(),
				Category:    string(rule.Category()),
				Severity:    rule.DefaultSeverity().String(),
				Description: rule.Description(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"rules": infos})

	case "text":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tSEVERITY\tDESCRIPTION")
		for _, rule := range catalog {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				rule.Name(), rule.Category(), rule.DefaultSeverity(), rule.Description())
		}
		return w.Flush()

	default:
		return cli.NewConfigError("format", fmt.Sprintf("unknown format %q", rulesFlags.format))
	}
}
