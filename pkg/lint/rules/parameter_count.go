package rules

import (
	"fmt"
	"go/ast"

	"benlabs/caliper/pkg/lint"
)

// ParameterCount flags functions taking more parameters than the
// limit. Long parameter lists usually want an options struct.
//
// Settings:
//   - max-params: maximum parameter count (default 5)
type ParameterCount struct{}

const defaultMaxParams = 5

func (r *ParameterCount) Name() string                   { return "parameter-count" }
func (r *ParameterCount) Category() lint.Category        { return lint.CategoryStyle }
func (r *ParameterCount) DefaultSeverity() lint.Severity { return lint.SeverityInfo }

func (r *ParameterCount) Description() string {
	return "functions with many parameters should take an options struct"
}

func (r *ParameterCount) Check(f *lint.File) []lint.Violation {
	maxParams := f.IntSetting(r.Name(), "max-params", defaultMaxParams)

	var violations []lint.Violation
	for _, decl := range f.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Type.Params == nil {
			continue
		}

		count := 0
		for _, field := range fn.Type.Params.List {
			// "a, b int" declares two parameters in one field.
			if n := len(field.Names); n > 0 {
				count += n
			} else {
				count++
			}
		}
		if count <= maxParams {
			continue
		}

		pos := f.Position(fn.Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			Message:    fmt.Sprintf("function %s has %d parameters (max %d)", funcName(fn), count, maxParams),
			Suggestion: "group related parameters into a struct",
		})
	}
	return violations
}
