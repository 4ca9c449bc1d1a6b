package report

import (
	"fmt"
	"io"
	"strings"

	"benlabs/caliper/pkg/lint"
)

// GitHubReporter renders violations as GitHub Actions workflow
// commands, which the runner turns into inline PR annotations:
//
//	::warning file=pkg/a.go,line=42,col=7,title=magic-number::magic number 8080
type GitHubReporter struct{}

func (g *GitHubReporter) Name() string { return "github" }

func (g *GitHubReporter) Write(w io.Writer, result *lint.Result) error {
	for i := range result.Violations {
		v := &result.Violations[i]

		level := "notice"
		switch v.Severity {
		case lint.SeverityWarning:
			level = "warning"
		case lint.SeverityError:
			level = "error"
		}

		props := fmt.Sprintf("file=%s,line=%d", v.File, v.Line)
		if v.Column > 0 {
			props += fmt.Sprintf(",col=%d", v.Column)
		}
		if v.EndLine > 0 {
			props += fmt.Sprintf(",endLine=%d", v.EndLine)
		}
		props += ",title=" + escapeProperty(v.Rule)

		message := v.Message
		if v.Suggestion != "" {
			message += " (suggestion: " + v.Suggestion + ")"
		}

		if _, err := fmt.Fprintf(w, "::%s %s::%s\n", level, props, escapeData(message)); err != nil {
			return err
		}
	}
	return nil
}

// escapeData escapes a workflow command message per the Actions
// runner's rules.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
