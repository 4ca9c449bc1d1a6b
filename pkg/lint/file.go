package lint

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// File is a parsed compilation unit handed to rules. It bundles the
// AST with the raw source so rules can inspect both structure and
// text without re-reading the file.
type File struct {
	// Path is the file path as given to the runner.
	Path string

	// Source is the raw file content.
	Source []byte

	// Lines is the source split into lines (1-indexed via Line()).
	Lines []string

	// AST is the parsed file, with comments attached.
	AST *ast.File

	// Fset is the file set used to parse the file. Rules use it to
	// resolve token positions.
	Fset *token.FileSet

	// settings holds per-rule configuration, keyed by rule name.
	settings map[string]map[string]any
}

// parseFile parses src into a File. Comments are always retained
// since ignore directives and comment rules depend on them.
func parseFile(path string, src []byte, settings map[string]map[string]any) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:     path,
		Source:   src,
		Lines:    strings.Split(string(src), "\n"),
		AST:      parsed,
		Fset:     fset,
		settings: settings,
	}, nil
}

// Position resolves a token position to file coordinates.
func (f *File) Position(pos token.Pos) token.Position {
	return f.Fset.Position(pos)
}

// Line returns the 1-indexed source line, or "" when out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// IsTest reports whether the file is a Go test file.
func (f *File) IsTest() bool {
	return strings.HasSuffix(f.Path, "_test.go")
}

// Setting returns the raw per-rule setting value, if configured.
func (f *File) Setting(rule, key string) (any, bool) {
	if f.settings == nil {
		return nil, false
	}
	ruleSettings, ok := f.settings[rule]
	if !ok {
		return nil, false
	}
	v, ok := ruleSettings[key]
	return v, ok
}

// IntSetting returns an integer setting, or def when absent or not a
// number. YAML decodes integers as int, so both int and float64 are
// accepted.
func (f *File) IntSetting(rule, key string, def int) int {
	v, ok := f.Setting(rule, key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// BoolSetting returns a boolean setting, or def when absent.
func (f *File) BoolSetting(rule, key string, def bool) bool {
	v, ok := f.Setting(rule, key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// StringSetting returns a string setting, or def when absent.
func (f *File) StringSetting(rule, key string, def string) string {
	v, ok := f.Setting(rule, key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// FloatSlice returns a numeric list setting, or nil when absent.
func (f *File) FloatSlice(rule, key string) []float64 {
	v, ok := f.Setting(rule, key)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		switch n := item.(type) {
		case int:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		case float64:
			out = append(out, n)
		}
	}
	return out
}

// isGenerated reports whether the source carries the standard
// "Code generated ... DO NOT EDIT." marker in its header.
func isGenerated(src []byte) bool {
	// Only scan the first 2KB; the marker convention puts it before
	// the package clause.
	head := src
	if len(head) > 2048 {
		head = head[:2048]
	}
	for _, line := range strings.Split(string(head), "\n") {
		if strings.HasPrefix(line, "// Code generated ") && strings.HasSuffix(strings.TrimSpace(line), "DO NOT EDIT.") {
			return true
		}
	}
	return false
}
