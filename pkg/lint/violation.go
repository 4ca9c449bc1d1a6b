package lint

import (
	"fmt"
	"sort"
)

// Category groups related rules for configuration and reporting.
type Category string

const (
	CategoryStyle        Category = "style"
	CategoryLiterals     Category = "literals"
	CategoryLogging      Category = "logging"
	CategoryOrganization Category = "organization"
	CategoryComments     Category = "comments"
)

// Violation records a single rule match: where it happened, how severe
// it is, and what to do about it.
type Violation struct {
	// Rule is the name of the rule that produced this violation.
	Rule string `json:"rule"`

	// Category is the rule's category.
	Category Category `json:"category"`

	// Severity is the effective severity after configuration
	// overrides have been applied.
	Severity Severity `json:"severity"`

	// File is the path of the offending file, as given to the runner.
	File string `json:"file"`

	// Line is the 1-indexed line number of the finding.
	Line int `json:"line"`

	// Column is the 1-indexed column, or 0 when unknown.
	Column int `json:"column,omitempty"`

	// EndLine is the last line of a multi-line finding, or 0.
	EndLine int `json:"end_line,omitempty"`

	// Message describes the problem.
	Message string `json:"message"`

	// Suggestion describes a fix, when the rule can offer one.
	Suggestion string `json:"suggestion,omitempty"`
}

// Location returns the finding location as "file:line:col".
func (v *Violation) Location() string {
	if v.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", v.File, v.Line, v.Column)
	}
	return fmt.Sprintf("%s:%d", v.File, v.Line)
}

// sortViolations orders violations by file, line, column and rule so
// concurrent runs produce deterministic output.
func sortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := &violations[i], &violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})
}
