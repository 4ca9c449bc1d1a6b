package rules

import (
	"regexp"
	"strings"

	"benlabs/caliper/pkg/lint"
)

// FileHeader enforces a header comment at the top of every file when
// a pattern is configured. The rule is inert without the setting, so
// repositories without a license header convention are unaffected.
//
// Settings:
//   - pattern: regular expression the first comment block must match
//   - ignore-tests: skip _test.go files (default false)
type FileHeader struct{}

func (r *FileHeader) Name() string                   { return "file-header" }
func (r *FileHeader) Category() lint.Category        { return lint.CategoryStyle }
func (r *FileHeader) DefaultSeverity() lint.Severity { return lint.SeverityError }

func (r *FileHeader) Description() string {
	return "files must start with the configured header comment"
}

func (r *FileHeader) Check(f *lint.File) []lint.Violation {
	pattern := f.StringSetting(r.Name(), "pattern", "")
	if pattern == "" {
		return nil
	}
	if f.IsTest() && f.BoolSetting(r.Name(), "ignore-tests", false) {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return []lint.Violation{{
			Rule:     r.Name(),
			Category: r.Category(),
			File:     f.Path,
			Line:     1,
			Message:  "invalid file-header pattern: " + err.Error(),
		}}
	}

	if re.MatchString(r.headerText(f)) {
		return nil
	}

	return []lint.Violation{{
		Rule:       r.Name(),
		Category:   r.Category(),
		File:       f.Path,
		Line:       1,
		Column:     1,
		Message:    "missing or malformed file header comment",
		Suggestion: "add a header comment matching the configured pattern",
	}}
}

// headerText returns the comment text preceding the package clause.
func (r *FileHeader) headerText(f *lint.File) string {
	pkgLine := f.Position(f.AST.Package).Line

	var sb strings.Builder
	for _, group := range f.AST.Comments {
		if f.Position(group.Pos()).Line >= pkgLine {
			break
		}
		sb.WriteString(group.Text())
		sb.WriteString("\n")
	}
	return sb.String()
}
