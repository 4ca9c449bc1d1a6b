package lint

import (
	"strings"
	"testing"
)

func parseTestFile(t *testing.T, src string) *File {
	t.Helper()
	f, err := parseFile("demo.go", []byte(src), nil)
	if err != nil {
		t.Fatalf("parseFile() error: %v", err)
	}
	return f
}

func TestSplitDirective(t *testing.T) {
	tests := []struct {
		text     string
		wantVerb string
		wantArgs []string
	}{
		{"disable-line", "disable-line", nil},
		{"disable-line stub", "disable-line", []string{"stub"}},
		{"disable-line a,b", "disable-line", []string{"a", "b"}},
		{"disable-line a, b", "disable-line", []string{"a", "b"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		verb, args := splitDirective(tt.text)
		if verb != tt.wantVerb {
			t.Errorf("splitDirective(%q) verb = %q, want %q", tt.text, verb, tt.wantVerb)
		}
		if strings.Join(args, ",") != strings.Join(tt.wantArgs, ",") {
			t.Errorf("splitDirective(%q) args = %v, want %v", tt.text, args, tt.wantArgs)
		}
	}
}

func TestParseDirectivesFileWindowEnforced(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("package demo\n")
	for i := 0; i < fileDirectiveWindow; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString("//caliper:disable-file stub\n")

	f := parseTestFile(t, sb.String())
	known := func(name string) bool { return name == "stub" }

	sup, violations := parseDirectives(f, known)
	if sup.fileWide["stub"] {
		t.Error("late disable-file directive should not apply")
	}
	if len(violations) != 1 || !strings.Contains(violations[0].Message, "first 10 lines") {
		t.Errorf("violations = %+v, want window warning", violations)
	}
}

func TestParseDirectivesFileRequiresRules(t *testing.T) {
	f := parseTestFile(t, "//caliper:disable-file\npackage demo\n")
	sup, violations := parseDirectives(f, func(string) bool { return true })

	if len(sup.fileWide) != 0 {
		t.Errorf("fileWide = %v, want empty", sup.fileWide)
	}
	if len(violations) != 1 || !strings.Contains(violations[0].Message, "explicit rule names") {
		t.Errorf("violations = %+v", violations)
	}
}

func TestParseDirectivesUnknownVerb(t *testing.T) {
	f := parseTestFile(t, "package demo\n\n//caliper:mute stub\n")
	_, violations := parseDirectives(f, func(string) bool { return true })

	if len(violations) != 1 || !strings.Contains(violations[0].Message, `unknown caliper directive "mute"`) {
		t.Errorf("violations = %+v", violations)
	}
}

func TestSuppressedLineSemantics(t *testing.T) {
	sup := &suppressions{
		fileWide: map[string]bool{"filewide": true},
		byLine: map[int]map[string]bool{
			3: nil,                // everything on line 3
			5: {"specific": true}, // one rule on line 5
		},
	}

	tests := []struct {
		rule string
		line int
		want bool
	}{
		{"filewide", 99, true},
		{"anything", 3, true},
		{"specific", 5, true},
		{"other", 5, false},
		{"specific", 6, false},
	}
	for _, tt := range tests {
		if got := sup.suppressed(tt.rule, tt.line); got != tt.want {
			t.Errorf("suppressed(%q, %d) = %v, want %v", tt.rule, tt.line, got, tt.want)
		}
	}
}
