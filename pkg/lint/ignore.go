package lint

import (
	"fmt"
	"strings"
)

// Ignore directive grammar:
//
//	//caliper:disable-line [rule,...]
//	//caliper:disable-next-line [rule,...]
//	//caliper:disable-file rule[,rule...]
//
// An empty rule list on the line directives suppresses every rule on
// the target line. disable-file requires explicit rule names and must
// appear within the first fileDirectiveWindow lines.
const (
	directivePrefix     = "caliper:"
	directiveLine       = "disable-line"
	directiveNextLine   = "disable-next-line"
	directiveFile       = "disable-file"
	fileDirectiveWindow = 10
)

// UnknownDirectiveRule is the synthetic rule name attached to
// violations produced by directives that name unregistered rules.
const UnknownDirectiveRule = "unknown-directive"

// suppressions indexes the ignore directives of one file.
type suppressions struct {
	// fileWide holds rules suppressed for the whole file.
	fileWide map[string]bool

	// byLine maps a line number to the rule set suppressed there.
	// A nil set means every rule is suppressed on that line.
	byLine map[int]map[string]bool
}

// parseDirectives scans the file's comments for ignore directives.
// Directives naming rules that are not registered produce
// warning-level violations; the directive still applies to the known
// names.
func parseDirectives(f *File, known func(string) bool) (*suppressions, []Violation) {
	sup := &suppressions{
		fileWide: make(map[string]bool),
		byLine:   make(map[int]map[string]bool),
	}
	var violations []Violation

	for _, group := range f.AST.Comments {
		for _, comment := range group.List {
			text := strings.TrimPrefix(comment.Text, "//")
			text = strings.TrimSpace(text)
			if !strings.HasPrefix(text, directivePrefix) {
				continue
			}

			pos := f.Position(comment.Pos())
			verb, args := splitDirective(strings.TrimPrefix(text, directivePrefix))
			rules, unknown := resolveRules(args, known)

			for _, name := range unknown {
				violations = append(violations, Violation{
					Rule:     UnknownDirectiveRule,
					Category: CategoryComments,
					Severity: SeverityWarning,
					File:     f.Path,
					Line:     pos.Line,
					Column:   pos.Column,
					Message:  fmt.Sprintf("ignore directive references unknown rule %q", name),
				})
			}

			switch verb {
			case directiveLine:
				sup.addLine(pos.Line, rules, len(args) == 0)
			case directiveNextLine:
				sup.addLine(pos.Line+1, rules, len(args) == 0)
			case directiveFile:
				if pos.Line > fileDirectiveWindow {
					violations = append(violations, Violation{
						Rule:     UnknownDirectiveRule,
						Category: CategoryComments,
						Severity: SeverityWarning,
						File:     f.Path,
						Line:     pos.Line,
						Column:   pos.Column,
						Message:  fmt.Sprintf("disable-file directive must appear within the first %d lines", fileDirectiveWindow),
					})
					continue
				}
				if len(args) == 0 {
					violations = append(violations, Violation{
						Rule:     UnknownDirectiveRule,
						Category: CategoryComments,
						Severity: SeverityWarning,
						File:     f.Path,
						Line:     pos.Line,
						Column:   pos.Column,
						Message:  "disable-file directive requires explicit rule names",
					})
					continue
				}
				for _, name := range rules {
					sup.fileWide[name] = true
				}
			default:
				violations = append(violations, Violation{
					Rule:     UnknownDirectiveRule,
					Category: CategoryComments,
					Severity: SeverityWarning,
					File:     f.Path,
					Line:     pos.Line,
					Column:   pos.Column,
					Message:  fmt.Sprintf("unknown caliper directive %q", verb),
				})
			}
		}
	}

	return sup, violations
}

// addLine records line-scoped suppression. all=true marks the line as
// suppressing every rule.
func (s *suppressions) addLine(line int, rules []string, all bool) {
	if all {
		s.byLine[line] = nil
		return
	}
	set, exists := s.byLine[line]
	if exists && set == nil {
		// Already suppressing everything on this line.
		return
	}
	if set == nil {
		set = make(map[string]bool)
		s.byLine[line] = set
	}
	for _, name := range rules {
		set[name] = true
	}
}

// suppressed reports whether the rule is suppressed at the line.
func (s *suppressions) suppressed(rule string, line int) bool {
	if s.fileWide[rule] {
		return true
	}
	set, ok := s.byLine[line]
	if !ok {
		return false
	}
	if set == nil {
		return true
	}
	return set[rule]
}

// splitDirective splits "disable-line a,b" into the verb and the
// rule list.
func splitDirective(text string) (verb string, args []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	verb = fields[0]
	if len(fields) == 1 {
		return verb, nil
	}
	for _, part := range strings.Split(strings.Join(fields[1:], ""), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			args = append(args, part)
		}
	}
	return verb, args
}

// resolveRules partitions directive arguments into known and unknown
// rule names.
func resolveRules(args []string, known func(string) bool) (rules, unknown []string) {
	for _, name := range args {
		if known(name) {
			rules = append(rules, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	return rules, unknown
}
