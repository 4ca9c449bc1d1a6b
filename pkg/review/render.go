package review

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// RenderJSON writes the result as indented JSON.
func RenderJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// RenderMarkdown writes the result as a markdown report suitable for
// a pull request comment.
func RenderMarkdown(w io.Writer, result *Result) error {
	var sb strings.Builder

	sb.WriteString("## Caliper review\n\n")
	fmt.Fprintf(&sb, "Commit `%s` against `%s`.\n\n", shortCommit(result.Commit), result.BaseRef)

	if result.LintOnly {
		sb.WriteString("_AI review skipped (no API key configured); linter findings only._\n\n")
	} else if result.Summary != "" {
		sb.WriteString(result.Summary)
		sb.WriteString("\n\n")
	}

	if len(result.Comments) > 0 {
		sb.WriteString("### Comments\n\n")
		for _, c := range result.Comments {
			fmt.Fprintf(&sb, "- **%s** `%s:%d`: %s\n", c.Severity, c.File, c.Line, c.Message)
			if c.Suggestion != "" {
				fmt.Fprintf(&sb, "  - Suggestion: %s\n", c.Suggestion)
			}
		}
		sb.WriteString("\n")
	}

	if result.Lint != nil && len(result.Lint.Violations) > 0 {
		sb.WriteString("### Linter findings\n\n")
		for _, v := range result.Lint.Violations {
			fmt.Fprintf(&sb, "- **%s** `%s`: [%s] %s\n", v.Severity, v.Location(), v.Rule, v.Message)
		}
		sb.WriteString("\n")
	}

	if len(result.Comments) == 0 && (result.Lint == nil || len(result.Lint.Violations) == 0) {
		sb.WriteString("No findings.\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func shortCommit(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
