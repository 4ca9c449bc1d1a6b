package rules

import (
	"fmt"
	"go/ast"

	"benlabs/caliper/pkg/lint"
)

// FunctionLength flags function bodies longer than a line budget.
//
// Settings:
//   - max-lines: maximum body length in lines (default 60)
type FunctionLength struct{}

const defaultMaxFunctionLines = 60

func (r *FunctionLength) Name() string                   { return "function-length" }
func (r *FunctionLength) Category() lint.Category        { return lint.CategoryStyle }
func (r *FunctionLength) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *FunctionLength) Description() string {
	return "long functions should be split into smaller ones"
}

func (r *FunctionLength) Check(f *lint.File) []lint.Violation {
	maxLines := f.IntSetting(r.Name(), "max-lines", defaultMaxFunctionLines)

	var violations []lint.Violation
	for _, decl := range f.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}

		start := f.Position(fn.Body.Lbrace)
		end := f.Position(fn.Body.Rbrace)
		lines := end.Line - start.Line - 1
		if lines <= maxLines {
			continue
		}

		pos := f.Position(fn.Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			EndLine:    end.Line,
			Message:    fmt.Sprintf("function %s is %d lines long (max %d)", funcName(fn), lines, maxLines),
			Suggestion: "extract helper functions for distinct steps",
		})
	}
	return violations
}

// funcName renders a function name including its receiver type.
func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return receiverTypeName(fn.Recv.List[0].Type) + "." + fn.Name.Name
}

// receiverTypeName extracts the bare type name from a receiver
// expression, unwrapping pointers and type parameters.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}
