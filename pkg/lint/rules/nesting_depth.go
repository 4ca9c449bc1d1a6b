package rules

import (
	"fmt"
	"go/ast"

	"benlabs/caliper/pkg/lint"
)

// NestingDepth flags statements nested deeper than a limit. Deep
// nesting usually indicates a function doing too much, or missing
// early returns.
//
// Settings:
//   - max-depth: maximum nesting depth inside a function body
//     (default 4)
type NestingDepth struct{}

const defaultMaxNestingDepth = 4

func (r *NestingDepth) Name() string                   { return "nesting-depth" }
func (r *NestingDepth) Category() lint.Category        { return lint.CategoryStyle }
func (r *NestingDepth) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

func (r *NestingDepth) Description() string {
	return "deeply nested control flow should use early returns"
}

func (r *NestingDepth) Check(f *lint.File) []lint.Violation {
	maxDepth := f.IntSetting(r.Name(), "max-depth", defaultMaxNestingDepth)

	var violations []lint.Violation
	for _, decl := range f.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}

		// Report only the shallowest offending statement per function
		// to avoid cascades from a single hot spot.
		if stmt, depth := deepestOver(fn.Body.List, 1, maxDepth); stmt != nil {
			pos := f.Position(stmt.Pos())
			violations = append(violations, lint.Violation{
				Rule:       r.Name(),
				Category:   r.Category(),
				File:       f.Path,
				Line:       pos.Line,
				Column:     pos.Column,
				Message:    fmt.Sprintf("nesting depth %d exceeds max %d in function %s", depth, maxDepth, funcName(fn)),
				Suggestion: "invert conditions and return early, or extract the inner block",
			})
		}
	}
	return violations
}

// deepestOver finds the first statement whose nesting depth exceeds
// the limit, together with the maximum depth reached below it.
func deepestOver(stmts []ast.Stmt, depth, limit int) (ast.Stmt, int) {
	for _, stmt := range stmts {
		children := nestedBlocks(stmt)
		if len(children) == 0 {
			continue
		}
		if depth+1 > limit {
			return stmt, maxDepthBelow(stmt, depth)
		}
		for _, block := range children {
			if found, d := deepestOver(block, depth+1, limit); found != nil {
				return found, d
			}
		}
	}
	return nil, 0
}

// maxDepthBelow measures the deepest nesting under stmt.
func maxDepthBelow(stmt ast.Stmt, depth int) int {
	deepest := depth + 1
	for _, block := range nestedBlocks(stmt) {
		for _, child := range block {
			if d := maxDepthBelow(child, depth+1); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}

// nestedBlocks returns the statement lists one nesting level below
// the given statement.
func nestedBlocks(stmt ast.Stmt) [][]ast.Stmt {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		blocks := [][]ast.Stmt{s.Body.List}
		if s.Else != nil {
			switch e := s.Else.(type) {
			case *ast.BlockStmt:
				blocks = append(blocks, e.List)
			case *ast.IfStmt:
				// else-if chains stay at the same depth.
				blocks = append(blocks, nestedBlocks(e)...)
			}
		}
		return blocks
	case *ast.ForStmt:
		return [][]ast.Stmt{s.Body.List}
	case *ast.RangeStmt:
		return [][]ast.Stmt{s.Body.List}
	case *ast.SwitchStmt:
		return caseBlocks(s.Body)
	case *ast.TypeSwitchStmt:
		return caseBlocks(s.Body)
	case *ast.SelectStmt:
		return commBlocks(s.Body)
	case *ast.BlockStmt:
		return [][]ast.Stmt{s.List}
	default:
		return nil
	}
}

func caseBlocks(body *ast.BlockStmt) [][]ast.Stmt {
	var blocks [][]ast.Stmt
	for _, stmt := range body.List {
		if clause, ok := stmt.(*ast.CaseClause); ok {
			blocks = append(blocks, clause.Body)
		}
	}
	return blocks
}

func commBlocks(body *ast.BlockStmt) [][]ast.Stmt {
	var blocks [][]ast.Stmt
	for _, stmt := range body.List {
		if clause, ok := stmt.(*ast.CommClause); ok {
			blocks = append(blocks, clause.Body)
		}
	}
	return blocks
}
