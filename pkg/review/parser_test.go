package review

import "testing"

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantErr      bool
		wantComments int
		wantSummary  string
	}{
		{
			name:         "plain JSON",
			in:           `{"summary": "looks fine", "comments": []}`,
			wantSummary:  "looks fine",
			wantComments: 0,
		},
		{
			name: "code fenced",
			in: "Here is my review:\n```json\n" +
				`{"summary": "one issue", "comments": [{"file": "a.go", "line": 3, "severity": "warning", "message": "unchecked error"}]}` +
				"\n```\nLet me know.",
			wantSummary:  "one issue",
			wantComments: 1,
		},
		{
			name:    "no JSON at all",
			in:      "I could not review this.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			in:      `{"summary": "broken", "comments": [}`,
			wantErr: true,
		},
		{
			name:         "braces inside strings",
			in:           `{"summary": "uses {} literals", "comments": []}`,
			wantSummary:  "uses {} literals",
			wantComments: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := parseResponse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResponse() error: %v", err)
			}
			if resp.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", resp.Summary, tt.wantSummary)
			}
			if len(resp.Comments) != tt.wantComments {
				t.Errorf("len(Comments) = %d, want %d", len(resp.Comments), tt.wantComments)
			}
		})
	}
}

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"error", "error"},
		{"CRITICAL", "error"},
		{"high", "error"},
		{"warning", "warning"},
		{"medium", "warning"},
		{"info", "info"},
		{"nit", "info"},
		{"", "warning"},
	}
	for _, tt := range tests {
		if got := normalizeSeverity(tt.in); got != tt.want {
			t.Errorf("normalizeSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
