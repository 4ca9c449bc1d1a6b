package rules

import (
	"fmt"
	"go/ast"
	"sort"

	"benlabs/caliper/pkg/lint"
)

// MethodCount flags receiver types accumulating too many methods in a
// single file, a common sign that a type has grown multiple
// responsibilities.
//
// Settings:
//   - max-methods: maximum methods per receiver type (default 12)
type MethodCount struct{}

const defaultMaxMethods = 12

func (r *MethodCount) Name() string                   { return "method-count" }
func (r *MethodCount) Category() lint.Category        { return lint.CategoryOrganization }
func (r *MethodCount) DefaultSeverity() lint.Severity { return lint.SeverityInfo }

func (r *MethodCount) Description() string {
	return "types with many methods may have too many responsibilities"
}

func (r *MethodCount) Check(f *lint.File) []lint.Violation {
	maxMethods := f.IntSetting(r.Name(), "max-methods", defaultMaxMethods)

	counts := make(map[string]int)
	first := make(map[string]*ast.FuncDecl)

	for _, decl := range f.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		name := receiverTypeName(fn.Recv.List[0].Type)
		if name == "" {
			continue
		}
		counts[name]++
		if _, seen := first[name]; !seen {
			first[name] = fn
		}
	}

	var offenders []string
	for name, count := range counts {
		if count > maxMethods {
			offenders = append(offenders, name)
		}
	}
	sort.Strings(offenders)

	var violations []lint.Violation
	for _, name := range offenders {
		pos := f.Position(first[name].Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			Message:    fmt.Sprintf("type %s has %d methods in this file (max %d)", name, counts[name], maxMethods),
			Suggestion: "split the type, or move cohesive method groups to a dedicated type",
		})
	}
	return violations
}
