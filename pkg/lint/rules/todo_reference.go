package rules

import (
	"fmt"
	"regexp"
	"strings"

	"benlabs/caliper/pkg/lint"
)

// TodoReference flags TODO and FIXME comments that do not reference a
// tracked issue. Untracked TODOs rot; requiring an issue reference
// keeps them actionable.
//
// Accepted forms: TODO(#123), TODO(org/repo#123), FIXME(#45).
type TodoReference struct{}

var (
	todoMarker    = regexp.MustCompile(`\b(TODO|FIXME)\b`)
	todoReference = regexp.MustCompile(`\b(TODO|FIXME)\(([\w./-]+)?#\d+\)`)
)

func (r *TodoReference) Name() string                   { return "todo-reference" }
func (r *TodoReference) Category() lint.Category        { return lint.CategoryComments }
func (r *TodoReference) DefaultSeverity() lint.Severity { return lint.SeverityInfo }

func (r *TodoReference) Description() string {
	return "TODO and FIXME comments must reference an issue"
}

func (r *TodoReference) Check(f *lint.File) []lint.Violation {
	var violations []lint.Violation
	for _, group := range f.AST.Comments {
		for _, comment := range group.List {
			for i, line := range strings.Split(comment.Text, "\n") {
				marker := todoMarker.FindString(line)
				if marker == "" || todoReference.MatchString(line) {
					continue
				}

				pos := f.Position(comment.Pos())
				violations = append(violations, lint.Violation{
					Rule:       r.Name(),
					Category:   r.Category(),
					File:       f.Path,
					Line:       pos.Line + i,
					Column:     pos.Column,
					Message:    fmt.Sprintf("%s comment without issue reference", marker),
					Suggestion: fmt.Sprintf("use %s(#<issue>) to link the tracking issue", marker),
				})
			}
		}
	}
	return violations
}
