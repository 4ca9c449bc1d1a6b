package report

import (
	"fmt"
	"io"

	"benlabs/caliper/pkg/lint"
)

// TextReporter renders results for humans:
//
//	pkg/server/server.go:42:7  warning  magic-number  magic number 8080
//	    suggestion: extract 8080 into a named constant
//
//	3 error(s), 1 warning(s), 0 info(s) in 12 file(s)
type TextReporter struct{}

func (t *TextReporter) Name() string { return "text" }

func (t *TextReporter) Write(w io.Writer, result *lint.Result) error {
	for i := range result.Violations {
		v := &result.Violations[i]
		if _, err := fmt.Fprintf(w, "%s  %s  %s  %s\n",
			v.Location(), v.Severity, v.Rule, v.Message); err != nil {
			return err
		}
		if v.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "    suggestion: %s\n", v.Suggestion); err != nil {
				return err
			}
		}
	}

	if len(result.Violations) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s), %d info(s) in %d file(s)",
		result.Errors, result.Warnings, result.Infos, result.FilesChecked)
	if err != nil {
		return err
	}
	if result.Suppressed > 0 {
		if _, err := fmt.Fprintf(w, " (%d suppressed)", result.Suppressed); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
