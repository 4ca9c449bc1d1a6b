package report

import (
	"encoding/json"
	"io"

	"benlabs/caliper/pkg/lint"
)

// JSONReporter renders the full result as an indented JSON document.
// The schema is the lint.Result type; violations are sorted by
// location so output is stable across runs.
type JSONReporter struct{}

func (j *JSONReporter) Name() string { return "json" }

func (j *JSONReporter) Write(w io.Writer, result *lint.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
