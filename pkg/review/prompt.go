package review

import (
	"fmt"
	"strings"

	"github.com/waigani/diffparser"

	"benlabs/caliper/pkg/lint"
)

const systemPrompt = `You are a senior Go engineer reviewing a pull request.
Focus on correctness, concurrency safety, error handling and API design.
Do not restate style issues the linter already found.
Respond with a JSON object only, no prose around it, shaped as:
{"summary": "<one-paragraph assessment>", "comments": [{"file": "path", "line": 12, "severity": "warning", "message": "...", "suggestion": "..."}]}
Comment only on lines added or modified in the diff. Severity is one of
"info", "warning" or "error". Omit "suggestion" when you have none.`

// buildPrompt assembles the user prompt from the parsed diff and the
// lint findings for the changed files.
func buildPrompt(diff *diffparser.Diff, sanitized string, lintResult *lint.Result) string {
	var sb strings.Builder

	sb.WriteString("Review the following change.\n\n## Changed files\n")
	for _, file := range diff.Files {
		switch file.Mode {
		case diffparser.NEW:
			fmt.Fprintf(&sb, "- %s (new, %d hunks)\n", file.NewName, len(file.Hunks))
		case diffparser.DELETED:
			fmt.Fprintf(&sb, "- %s (deleted)\n", file.OrigName)
		default:
			fmt.Fprintf(&sb, "- %s (%d hunks)\n", file.NewName, len(file.Hunks))
		}
	}

	if lintResult != nil && len(lintResult.Violations) > 0 {
		sb.WriteString("\n## Linter findings (already reported, do not repeat)\n")
		for _, v := range lintResult.Violations {
			fmt.Fprintf(&sb, "- %s: [%s] %s\n", v.Location(), v.Rule, v.Message)
		}
	}

	sb.WriteString("\n## Diff\n```diff\n")
	sb.WriteString(sanitized)
	sb.WriteString("\n```\n")
	return sb.String()
}

// addedLines maps file path to the set of line numbers the diff added
// or modified. Comments outside these lines are dropped.
func addedLines(diff *diffparser.Diff) map[string]map[int]bool {
	lines := make(map[string]map[int]bool)
	for _, file := range diff.Files {
		if file.NewName == "" {
			continue
		}
		for _, hunk := range file.Hunks {
			for _, line := range hunk.NewRange.Lines {
				if line.Mode != diffparser.ADDED {
					continue
				}
				if lines[file.NewName] == nil {
					lines[file.NewName] = make(map[int]bool)
				}
				lines[file.NewName][line.Number] = true
			}
		}
	}
	return lines
}
