package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/rules"
)

func testRunner(t *testing.T) *lint.Runner {
	t.Helper()
	return lint.NewRunner(rules.DefaultRegistry(), lint.DefaultOptions())
}

func postLint(t *testing.T, h *LintHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/lint", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLintHandlerFindsViolations(t *testing.T) {
	h := NewLintHandler(testRunner(t), 1<<20)

	source := "package demo\n\nimport \"fmt\"\n\nfunc Greet() {\n\tfmt.Println(\"hi\")\n}\n"
	body, err := json.Marshal(LintRequest{Filename: "demo.go", Source: source})
	if err != nil {
		t.Fatal(err)
	}

	rec := postLint(t, h, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var result lint.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Rule == "print-statement" && v.File == "demo.go" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a print-statement violation, got %+v", result.Violations)
	}
}

func TestLintHandlerRejectsEmptySource(t *testing.T) {
	h := NewLintHandler(testRunner(t), 1<<20)
	rec := postLint(t, h, `{"filename": "x.go", "source": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLintHandlerRejectsBadJSON(t *testing.T) {
	h := NewLintHandler(testRunner(t), 1<<20)
	rec := postLint(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLintHandlerCapsBodySize(t *testing.T) {
	h := NewLintHandler(testRunner(t), 64)
	big := `{"filename": "x.go", "source": "` + strings.Repeat("a", 200) + `"}`
	rec := postLint(t, h, big)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestLintHandlerMethodNotAllowed(t *testing.T) {
	h := NewLintHandler(testRunner(t), 1<<20)
	req := httptest.NewRequest("GET", "/api/lint", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestLintHandlerSyntaxErrors(t *testing.T) {
	h := NewLintHandler(testRunner(t), 1<<20)
	rec := postLint(t, h, `{"source": "package demo\nfunc {"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with syntax violation", rec.Code)
	}
	var result lint.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(result.Violations) == 0 || result.Violations[0].Rule != lint.SyntaxRule {
		t.Errorf("expected syntax violation, got %+v", result.Violations)
	}
}
