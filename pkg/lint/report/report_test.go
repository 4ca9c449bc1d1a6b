package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"benlabs/caliper/pkg/lint"
)

func sampleResult() *lint.Result {
	return &lint.Result{
		Violations: []lint.Violation{
			{
				Rule:       "magic-number",
				Category:   lint.CategoryLiterals,
				Severity:   lint.SeverityWarning,
				File:       "pkg/a.go",
				Line:       42,
				Column:     7,
				Message:    "magic number 8080",
				Suggestion: "extract 8080 into a named constant",
			},
			{
				Rule:     "file-header",
				Category: lint.CategoryStyle,
				Severity: lint.SeverityError,
				File:     "pkg/b.go",
				Line:     1,
				Message:  "missing or malformed file header comment",
			},
		},
		FilesChecked: 3,
		Errors:       1,
		Warnings:     1,
		Suppressed:   2,
	}
}

func TestGetKnownFormats(t *testing.T) {
	for _, format := range []string{"text", "json", "github"} {
		r, err := Get(format)
		if err != nil {
			t.Errorf("Get(%q) error: %v", format, err)
			continue
		}
		if r.Name() != format {
			t.Errorf("Get(%q).Name() = %q", format, r.Name())
		}
	}
	if _, err := Get("xml"); err == nil {
		t.Error("Get(xml) should fail")
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextReporter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"pkg/a.go:42:7  warning  magic-number  magic number 8080",
		"suggestion: extract 8080 into a named constant",
		"pkg/b.go:1  error  file-header",
		"1 error(s), 1 warning(s), 0 info(s) in 3 file(s) (2 suppressed)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextReporterCleanRun(t *testing.T) {
	var buf bytes.Buffer
	result := &lint.Result{FilesChecked: 5}
	if err := (&TextReporter{}).Write(&buf, result); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if got := buf.String(); got != "0 error(s), 0 warning(s), 0 info(s) in 5 file(s)\n" {
		t.Errorf("output = %q", got)
	}
}

func TestJSONReporterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONReporter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var decoded lint.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(decoded.Violations))
	}
	if decoded.Violations[0].Severity != lint.SeverityWarning {
		t.Errorf("Severity = %v, want warning (severities encode as names)", decoded.Violations[0].Severity)
	}
}

func TestJSONReporterDurationMilliseconds(t *testing.T) {
	result := &lint.Result{
		Violations:   []lint.Violation{},
		FilesChecked: 1,
		Duration:     1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	if err := (&JSONReporter{}).Write(&buf, result); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var decoded struct {
		DurationMS int64 `json:"duration_ms"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.DurationMS != 1500 {
		t.Errorf("duration_ms = %d, want 1500", decoded.DurationMS)
	}
}

func TestGitHubReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&GitHubReporter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), buf.String())
	}

	if want := "::warning file=pkg/a.go,line=42,col=7,title=magic-number::magic number 8080 (suggestion: extract 8080 into a named constant)"; lines[0] != want {
		t.Errorf("line 0 = %q\nwant     %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "::error file=pkg/b.go,line=1,title=file-header::") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestGitHubReporterEscaping(t *testing.T) {
	result := &lint.Result{
		Violations: []lint.Violation{{
			Rule:     "error-message",
			Severity: lint.SeverityInfo,
			File:     "pkg/c.go",
			Line:     7,
			Message:  "100% wrong\nsecond line",
		}},
	}

	var buf bytes.Buffer
	if err := (&GitHubReporter{}).Write(&buf, result); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "100%25 wrong%0Asecond line") {
		t.Errorf("message not escaped: %q", out)
	}
	if !strings.HasPrefix(out, "::notice ") {
		t.Errorf("info severity should map to notice: %q", out)
	}
}
