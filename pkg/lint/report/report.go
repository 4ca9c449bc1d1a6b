// Package report renders lint results in the supported output
// formats: human-readable text, JSON for tooling, and GitHub Actions
// workflow commands for CI annotations.
package report

import (
	"fmt"
	"io"
	"sort"

	"benlabs/caliper/pkg/lint"
)

// Reporter renders a lint result to a writer.
type Reporter interface {
	// Name returns the format name used in configuration and flags.
	Name() string

	// Write renders the result.
	Write(w io.Writer, result *lint.Result) error
}

var reporters = map[string]Reporter{
	"text":   &TextReporter{},
	"json":   &JSONReporter{},
	"github": &GitHubReporter{},
}

// Get returns the reporter for a format name.
func Get(format string) (Reporter, error) {
	r, ok := reporters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %v)", format, Formats())
	}
	return r, nil
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(reporters))
	for name := range reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
