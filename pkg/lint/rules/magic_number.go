package rules

import (
	"fmt"
	"go/ast"
	"go/token"

	"benlabs/caliper/pkg/lint"
)

// MagicNumber flags numeric literals used outside constant
// declarations.
//
// Settings:
//   - allow: list of additional permitted values (default permits
//     0, 1, -1, 2, 10 and 100)
//   - ignore-tests: skip _test.go files (default true)
type MagicNumber struct{}

var defaultAllowedNumbers = map[float64]bool{
	0: true, 1: true, -1: true, 2: true, 10: true, 100: true,
}

func (r *MagicNumber) Name() string                  { return "magic-number" }
func (r *MagicNumber) Category() lint.Category       { return lint.CategoryLiterals }
func (r *MagicNumber) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *MagicNumber) Description() string {
	return "numeric literals should be named constants"
}

func (r *MagicNumber) Check(f *lint.File) []lint.Violation {
	if f.IsTest() && f.BoolSetting(r.Name(), "ignore-tests", true) {
		return nil
	}

	allowed := defaultAllowedNumbers
	if extra := f.FloatSlice(r.Name(), "allow"); extra != nil {
		allowed = make(map[float64]bool, len(defaultAllowedNumbers)+len(extra))
		for v := range defaultAllowedNumbers {
			allowed[v] = true
		}
		for _, v := range extra {
			allowed[v] = true
		}
	}

	var violations []lint.Violation

	// Const blocks and array sizes are legitimate literal homes; walk
	// with a small parent stack to recognize them.
	var stack []ast.Node
	ast.Inspect(f.AST, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}
		stack = append(stack, n)

		lit, ok := n.(*ast.BasicLit)
		if !ok || (lit.Kind != token.INT && lit.Kind != token.FLOAT) {
			return true
		}
		if literalPermitted(stack) {
			return true
		}

		value, ok := parseNumber(lit.Value)
		if !ok || allowed[value] {
			return true
		}

		pos := f.Position(lit.Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			Message:    fmt.Sprintf("magic number %s", lit.Value),
			Suggestion: fmt.Sprintf("extract %s into a named constant", lit.Value),
		})
		return true
	})

	return violations
}

// literalPermitted reports whether the literal at the top of the
// stack sits in a position where bare numbers are conventional:
// constant declarations, array sizes, struct tags and iota offsets.
func literalPermitted(stack []ast.Node) bool {
	for i := len(stack) - 2; i >= 0; i-- {
		switch parent := stack[i].(type) {
		case *ast.GenDecl:
			if parent.Tok == token.CONST {
				return true
			}
		case *ast.ArrayType:
			// The length expression of [N]T.
			if i+1 < len(stack) && parent.Len == stack[i+1] {
				return true
			}
		case *ast.Field:
			// Struct tags.
			return true
		}
	}
	return false
}

// parseNumber parses an INT or FLOAT literal value. Hex, octal and
// binary literals are treated as deliberate (bit masks, permissions)
// and skipped.
func parseNumber(text string) (float64, bool) {
	if len(text) > 1 && text[0] == '0' && text[1] != '.' {
		return 0, false
	}
	var value float64
	if _, err := fmt.Sscanf(text, "%g", &value); err != nil {
		return 0, false
	}
	return value, true
}
