package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// modelResponse is the JSON shape the model is instructed to return.
type modelResponse struct {
	Summary  string    `json:"summary"`
	Comments []Comment `json:"comments"`
}

// parseResponse extracts the JSON object from the model's reply.
// Models sometimes wrap JSON in a code fence or lead with prose, so
// parsing starts at the first brace and ends at its match.
func parseResponse(text string) (*modelResponse, error) {
	payload := extractJSONObject(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	for i := range resp.Comments {
		resp.Comments[i].Severity = normalizeSeverity(resp.Comments[i].Severity)
	}
	return &resp, nil
}

// extractJSONObject returns the first balanced top-level JSON object
// in text, respecting strings and escapes.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func normalizeSeverity(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "high", "critical":
		return "error"
	case "info", "low", "nit", "note":
		return "info"
	default:
		return "warning"
	}
}
