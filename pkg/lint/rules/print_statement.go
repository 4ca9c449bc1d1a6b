package rules

import (
	"fmt"
	"go/ast"

	"benlabs/caliper/pkg/lint"
)

// PrintStatement flags fmt.Print-family calls and the println/print
// builtins outside package main. Library code should use structured
// logging instead of writing to stdout.
//
// Settings:
//   - allow-main: permit prints in package main (default true)
type PrintStatement struct{}

var printFuncs = map[string]bool{
	"Print": true, "Println": true, "Printf": true,
}

func (r *PrintStatement) Name() string                   { return "print-statement" }
func (r *PrintStatement) Category() lint.Category        { return lint.CategoryLogging }
func (r *PrintStatement) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *PrintStatement) Description() string {
	return "library code should log instead of printing to stdout"
}

func (r *PrintStatement) Check(f *lint.File) []lint.Violation {
	if f.AST.Name.Name == "main" && f.BoolSetting(r.Name(), "allow-main", true) {
		return nil
	}

	var violations []lint.Violation
	ast.Inspect(f.AST, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		name := printCallName(call)
		if name == "" {
			return true
		}

		pos := f.Position(call.Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			Message:    fmt.Sprintf("call to %s in library code", name),
			Suggestion: "use log/slog for structured output",
		})
		return true
	})
	return violations
}

// printCallName returns the offending call name, or "" when the call
// is not a print.
func printCallName(call *ast.CallExpr) string {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		pkg, ok := fn.X.(*ast.Ident)
		if ok && pkg.Name == "fmt" && printFuncs[fn.Sel.Name] {
			return "fmt." + fn.Sel.Name
		}
	case *ast.Ident:
		if fn.Name == "println" || fn.Name == "print" {
			return fn.Name
		}
	}
	return ""
}
