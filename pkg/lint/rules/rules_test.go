package rules

import (
	"context"
	"strings"
	"testing"

	"benlabs/caliper/pkg/lint"
)

// runRule lints src with a single rule and optional settings.
func runRule(t *testing.T, rule lint.Rule, path, src string, settings map[string]any) []lint.Violation {
	t.Helper()

	registry := lint.NewRegistry()
	registry.MustRegister(rule)

	opts := lint.DefaultOptions()
	if settings != nil {
		opts.Rules = map[string]lint.RuleOption{
			rule.Name(): {Settings: settings},
		}
	}

	runner := lint.NewRunner(registry, opts)
	result, err := runner.LintSource(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("LintSource() error: %v", err)
	}
	return result.Violations
}

func TestFunctionLength(t *testing.T) {
	src := `package demo

func Long() {
	a := 1
	b := a
	c := b
	_ = c
}
`
	got := runRule(t, &FunctionLength{}, "demo.go", src, map[string]any{"max-lines": 2})
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, "function Long") {
		t.Errorf("Message = %q, want function name", got[0].Message)
	}

	if got := runRule(t, &FunctionLength{}, "demo.go", src, nil); len(got) != 0 {
		t.Errorf("default budget should pass a 4-line body, got %+v", got)
	}
}

func TestFunctionLengthReceiverName(t *testing.T) {
	src := `package demo

type T struct{}

func (t *T) Do() {
	a := 1
	b := a
	_ = b
}
`
	got := runRule(t, &FunctionLength{}, "demo.go", src, map[string]any{"max-lines": 1})
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, "T.Do") {
		t.Errorf("Message = %q, want receiver-qualified name", got[0].Message)
	}
}

func TestParameterCount(t *testing.T) {
	src := `package demo

func Many(a, b int, c string, d bool, e float64, f byte) {}

func Few(a, b int) {}
`
	got := runRule(t, &ParameterCount{}, "demo.go", src, nil)
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, "has 6 parameters") {
		t.Errorf("Message = %q, want grouped parameters counted individually", got[0].Message)
	}
}

func TestNestingDepth(t *testing.T) {
	src := `package demo

func Deep(items []int) {
	for _, item := range items {
		if item > 0 {
			if item%2 == 0 {
				_ = item
			}
		}
	}
}
`
	got := runRule(t, &NestingDepth{}, "demo.go", src, map[string]any{"max-depth": 2})
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, "function Deep") {
		t.Errorf("Message = %q", got[0].Message)
	}

	if got := runRule(t, &NestingDepth{}, "demo.go", src, nil); len(got) != 0 {
		t.Errorf("depth 3 should pass the default limit, got %+v", got)
	}
}

func TestNestingDepthElseIfChain(t *testing.T) {
	src := `package demo

func Chain(n int) int {
	if n == 1 {
		return 1
	} else if n == 2 {
		return 2
	} else if n == 3 {
		return 3
	}
	return 0
}
`
	if got := runRule(t, &NestingDepth{}, "demo.go", src, map[string]any{"max-depth": 2}); len(got) != 0 {
		t.Errorf("else-if chains should not add depth, got %+v", got)
	}
}

func TestMagicNumber(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		settings map[string]any
		want     int
	}{
		{
			name: "flags unexplained literal",
			src:  "package demo\n\nfunc F() int { return 42 }\n",
			want: 1,
		},
		{
			name: "common values allowed",
			src:  "package demo\n\nfunc F() int { return 0 + 1 + 2 + 10 + 100 }\n",
			want: 0,
		},
		{
			name: "const declarations allowed",
			src:  "package demo\n\nconst limit = 42\n",
			want: 0,
		},
		{
			name: "array sizes allowed",
			src:  "package demo\n\nvar buf [42]byte\n",
			want: 0,
		},
		{
			name: "hex literals skipped",
			src:  "package demo\n\nfunc F() int { return 0xFF }\n",
			want: 0,
		},
		{
			name:     "allow setting extends the list",
			src:      "package demo\n\nfunc F() int { return 42 }\n",
			settings: map[string]any{"allow": []any{42}},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, &MagicNumber{}, "demo.go", tt.src, tt.settings)
			if len(got) != tt.want {
				t.Errorf("violations = %d, want %d: %+v", len(got), tt.want, got)
			}
		})
	}
}

func TestMagicNumberSkipsTestFiles(t *testing.T) {
	src := "package demo\n\nfunc F() int { return 42 }\n"
	if got := runRule(t, &MagicNumber{}, "demo_test.go", src, nil); len(got) != 0 {
		t.Errorf("test files should be skipped by default, got %+v", got)
	}
	got := runRule(t, &MagicNumber{}, "demo_test.go", src, map[string]any{"ignore-tests": false})
	if len(got) != 1 {
		t.Errorf("ignore-tests=false should lint test files, got %+v", got)
	}
}

func TestPrintStatement(t *testing.T) {
	library := "package demo\n\nimport \"fmt\"\n\nfunc F() {\n\tfmt.Println(\"x\")\n\tprintln(\"y\")\n}\n"
	got := runRule(t, &PrintStatement{}, "demo.go", library, nil)
	if len(got) != 2 {
		t.Fatalf("violations = %d, want 2: %+v", len(got), got)
	}

	main := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"x\")\n}\n"
	if got := runRule(t, &PrintStatement{}, "main.go", main, nil); len(got) != 0 {
		t.Errorf("package main should be allowed by default, got %+v", got)
	}
	got = runRule(t, &PrintStatement{}, "main.go", main, map[string]any{"allow-main": false})
	if len(got) != 1 {
		t.Errorf("allow-main=false should flag package main, got %+v", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "capitalized",
			src:  "package demo\n\nimport \"errors\"\n\nvar err = errors.New(\"Bad input\")\n",
			want: 1,
		},
		{
			name: "trailing period",
			src:  "package demo\n\nimport \"fmt\"\n\nvar err = fmt.Errorf(\"it failed.\")\n",
			want: 1,
		},
		{
			name: "initialism accepted",
			src:  "package demo\n\nimport \"errors\"\n\nvar err = errors.New(\"TLS handshake failed\")\n",
			want: 0,
		},
		{
			name: "lowercase fragment accepted",
			src:  "package demo\n\nimport \"fmt\"\n\nvar err = fmt.Errorf(\"parsing config: %v\", 1)\n",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRule(t, &ErrorMessage{}, "demo.go", tt.src, nil)
			if len(got) != tt.want {
				t.Errorf("violations = %d, want %d: %+v", len(got), tt.want, got)
			}
		})
	}
}

func TestMethodCount(t *testing.T) {
	src := `package demo

type Big struct{}

func (b *Big) A() {}
func (b *Big) B() {}
func (b Big) C()  {}

type Small struct{}

func (s *Small) One() {}
`
	got := runRule(t, &MethodCount{}, "demo.go", src, map[string]any{"max-methods": 2})
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1: %+v", len(got), got)
	}
	if !strings.Contains(got[0].Message, "type Big has 3 methods") {
		t.Errorf("Message = %q", got[0].Message)
	}
}

func TestTodoReference(t *testing.T) {
	src := `package demo

// TODO: clean this up
// TODO(#123): tracked, fine
// FIXME(org/repo#45): also fine
// FIXME later
func F() {}
`
	got := runRule(t, &TodoReference{}, "demo.go", src, nil)
	if len(got) != 2 {
		t.Fatalf("violations = %d, want 2: %+v", len(got), got)
	}
	for _, v := range got {
		if !strings.Contains(v.Message, "without issue reference") {
			t.Errorf("Message = %q", v.Message)
		}
	}
}

func TestFileHeader(t *testing.T) {
	settings := map[string]any{"pattern": `Copyright \d{4} Benlabs`}

	missing := "package demo\n"
	got := runRule(t, &FileHeader{}, "demo.go", missing, settings)
	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1: %+v", len(got), got)
	}
	if got[0].Line != 1 {
		t.Errorf("Line = %d, want 1", got[0].Line)
	}

	present := "// Copyright 2026 Benlabs. All rights reserved.\n\npackage demo\n"
	if got := runRule(t, &FileHeader{}, "demo.go", present, settings); len(got) != 0 {
		t.Errorf("matching header should pass, got %+v", got)
	}

	if got := runRule(t, &FileHeader{}, "demo.go", missing, nil); len(got) != 0 {
		t.Errorf("rule should be inert without a pattern, got %+v", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()
	for _, name := range []string{
		"function-length", "nesting-depth", "parameter-count",
		"method-count", "magic-number", "print-statement",
		"error-message", "todo-reference", "file-header",
	} {
		if !registry.Has(name) {
			t.Errorf("rule %q not registered", name)
		}
	}
}
