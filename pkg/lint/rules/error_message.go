package rules

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"benlabs/caliper/pkg/lint"
)

// ErrorMessage flags error strings that start with a capital letter
// or end with punctuation. Error messages get wrapped and chained, so
// they should read as mid-sentence fragments.
type ErrorMessage struct{}

func (r *ErrorMessage) Name() string                   { return "error-message" }
func (r *ErrorMessage) Category() lint.Category        { return lint.CategoryStyle }
func (r *ErrorMessage) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *ErrorMessage) Description() string {
	return "error strings should not be capitalized or end with punctuation"
}

func (r *ErrorMessage) Check(f *lint.File) []lint.Violation {
	var violations []lint.Violation
	ast.Inspect(f.AST, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !isErrorConstructor(call) || len(call.Args) == 0 {
			return true
		}

		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		text, err := strconv.Unquote(lit.Value)
		if err != nil || text == "" {
			return true
		}

		problem := errorStringProblem(text)
		if problem == "" {
			return true
		}

		pos := f.Position(lit.Pos())
		violations = append(violations, lint.Violation{
			Rule:       r.Name(),
			Category:   r.Category(),
			File:       f.Path,
			Line:       pos.Line,
			Column:     pos.Column,
			Message:    fmt.Sprintf("error string %s", problem),
			Suggestion: "error messages should be lowercase fragments without trailing punctuation",
		})
		return true
	})
	return violations
}

// isErrorConstructor matches errors.New and fmt.Errorf calls.
func isErrorConstructor(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	switch {
	case pkg.Name == "errors" && sel.Sel.Name == "New":
		return true
	case pkg.Name == "fmt" && sel.Sel.Name == "Errorf":
		return true
	}
	return false
}

// errorStringProblem describes what is wrong with the message, or
// returns "" when it is acceptable.
func errorStringProblem(text string) string {
	runes := []rune(text)

	first := runes[0]
	// Leading initialisms like "TLS handshake failed" are fine; only
	// flag a capital followed by lowercase.
	if unicode.IsUpper(first) && len(runes) > 1 && unicode.IsLower(runes[1]) {
		return "starts with a capital letter"
	}

	trimmed := strings.TrimRight(text, " ")
	if trimmed == "" {
		return ""
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		// "..." is sometimes used for progress messages; still flag
		// it in errors, but allow format strings ending in ":" for
		// wrapped errors.
		return "ends with punctuation"
	}
	return ""
}
